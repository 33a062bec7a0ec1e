package discordutils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// MemberIsAdmin returns true if the given member has admin permissions.
func MemberIsAdmin(member *discordgo.Member) bool {
	return member != nil && member.Permissions&discordgo.PermissionAdministrator > 0
}

// FindRoleByName returns the role with the given name, or nil.
func FindRoleByName(roles []*discordgo.Role, name string) *discordgo.Role {
	for _, role := range roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}

// AckInteraction sends a deferred response for the given interaction.
func AckInteraction(
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) {
	session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// SendFollowup creates a followup message with the given content.
func SendFollowup(
	content string,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) {
	_, err := session.FollowupMessageCreate(
		interaction,
		true,
		&discordgo.WebhookParams{
			Content: content,
		},
	)
	if err != nil {
		log.Printf("Failed to send a followup message: %v", err)
	}
}

// SendDM sends a direct message to the given user.
func SendDM(userID, content string, session *discordgo.Session) error {
	channel, err := session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = session.ChannelMessageSend(channel.ID, content)
	return err
}
