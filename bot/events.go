package bot

import (
	"log"

	"pairbot/discordutils"

	"github.com/bwmarrin/discordgo"
)

const welcomeMessage = "Welcome! Glad to have you here. " +
	"React to the welcome message to unlock the rest of the server."

// handleReactionAdd grants the configured welcome role to members who react
// to the guild's welcome message.
func (bot *Bot) handleReactionAdd(
	s *discordgo.Session,
	r *discordgo.MessageReactionAdd,
) {
	if r.GuildID == "" {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}

	entry, err := bot.store.WelcomeRoleByMessage(r.GuildID, r.MessageID)
	if err != nil {
		// Not the welcome message, or no mapping configured.
		return
	}

	if err := s.GuildMemberRoleAdd(r.GuildID, r.UserID, entry.RoleID); err != nil {
		log.Printf(
			"Failed to grant the welcome role to %v in %v: %v",
			r.UserID,
			r.GuildID,
			err,
		)
	} else {
		log.Printf("Granted the welcome role to %v in %v", r.UserID, r.GuildID)
	}
}

// handleMemberJoin greets new members with a DM.
func (bot *Bot) handleMemberJoin(
	s *discordgo.Session,
	m *discordgo.GuildMemberAdd,
) {
	if m.User == nil || m.User.Bot {
		return
	}

	if err := discordutils.SendDM(m.User.ID, welcomeMessage, s); err != nil {
		log.Printf("Failed to greet %v: %v", m.User.Username, err)
	}
}
