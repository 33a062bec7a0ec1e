package bot

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pairbot/discordutils"
	"pairbot/interview"
	"pairbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

const (
	// Wednesday, in the Monday=0 convention the configs use.
	defaultDayOfWeek = 2
	defaultEmoji     = "👍"
	emojiWaitWindow  = 15 * time.Second
)

const notAdminReply = "You need to be an administrator to use this command."

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var minDayOfWeek float64 = 0

var botCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "pair-start",
		Description: "Starts the weekly interview matching activity in this server.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "The channel to post the weekly announcement in.",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: true,
			}, {
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "day-of-week",
				Description: "Weekday of the announcement, Monday=0 (default Wednesday).",
				MinValue:    &minDayOfWeek,
				MaxValue:    6,
				Required:    false,
			},
		},
	}, {
		Name:        "pair-stop",
		Description: "Stops the weekly interview matching activity.",
	}, {
		Name:        "pair-status",
		Description: "Shows the interview matching configuration for this server.",
	}, {
		Name:        "pair-run-post",
		Description: "Triggers the weekly announcement job for today's weekday.",
	}, {
		Name:        "pair-run-collect",
		Description: "Triggers the matching job for today's weekday.",
	}, {
		Name:        "timelines-start",
		Description: "Enables the monthly hiring season announcements.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "The channel to post the monthly announcement in.",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: true,
			},
		},
	}, {
		Name:        "timelines-stop",
		Description: "Disables the monthly hiring season announcements.",
	}, {
		Name:        "timelines-run",
		Description: "Sends this month's hiring announcement now.",
	}, {
		Name:        "welcome-set",
		Description: "Sets the message and role used for welcome reactions.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message-id",
				Description: "The welcome message members react to.",
				Required:    true,
			}, {
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role granted on reaction.",
				Required:    true,
			},
		},
	},
}

// PairStart configures the weekly matching activity for the guild. It asks
// the invoker to pick the opt-in emoji by reacting to a prompt, then upserts
// the configuration with the invoker as the wildcard participant.
func (bot *Bot) PairStart(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	data := i.ApplicationCommandData()
	channel := data.Options[0].ChannelValue(nil)
	day := defaultDayOfWeek
	if len(data.Options) > 1 {
		day = int(data.Options[1].IntValue())
	}

	emoji, ok := bot.waitForEmojiChoice(i)
	if !ok {
		return
	}

	entry := models.InterviewMatch{
		GuildID:   i.GuildID,
		AuthorID:  i.Member.User.ID,
		ChannelID: channel.ID,
		DayOfWeek: day,
		Emoji:     emoji,
	}
	if err := bot.store.UpsertInterviewMatch(entry); err != nil {
		log.Printf("Failed to save the matching config for guild %v: %v", i.GuildID, err)
		discordutils.SendFollowup(
			"Something went wrong saving the activity, try again.",
			i.Interaction,
			bot.session,
		)
		return
	}

	discordutils.SendFollowup(
		fmt.Sprintf("**Interview Match** activity scheduled! See you there %v.", emoji),
		i.Interaction,
		bot.session,
	)
}

// waitForEmojiChoice prompts the invoker to react with the emoji they want
// for the activity. Falls back to the default after the wait window; custom
// emojis abort the command.
func (bot *Bot) waitForEmojiChoice(i *discordgo.InteractionCreate) (string, bool) {
	prompt, err := bot.session.ChannelMessageSend(i.ChannelID, fmt.Sprintf(
		"You have %v to react to this message with the emoji "+
			"that you want to use (by default it is %v).",
		emojiWaitWindow,
		defaultEmoji,
	))
	if err != nil {
		log.Printf("Failed to send the emoji prompt in guild %v: %v", i.GuildID, err)
		return defaultEmoji, true
	}

	choice := make(chan discordgo.Emoji, 1)
	remove := bot.session.AddHandler(func(
		_ *discordgo.Session,
		r *discordgo.MessageReactionAdd,
	) {
		if r.MessageID != prompt.ID || r.UserID != i.Member.User.ID {
			return
		}
		select {
		case choice <- r.Emoji:
		default:
		}
	})
	defer remove()

	select {
	case emoji := <-choice:
		if emoji.ID != "" {
			discordutils.SendFollowup(
				"This is shameful, but custom emojis are not supported yet 😔.",
				i.Interaction,
				bot.session,
			)
			return "", false
		}
		return emoji.Name, true
	case <-time.After(emojiWaitWindow):
		return defaultEmoji, true
	}
}

// PairStop removes the guild's matching configuration.
func (bot *Bot) PairStop(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	var reply string
	if _, err := bot.store.GetInterviewMatch(i.GuildID); errors.Is(err, gorm.ErrRecordNotFound) {
		reply = "No activity was running! 😱"
	} else if err := bot.store.DeleteInterviewMatch(i.GuildID); err != nil {
		log.Printf("Failed to delete the matching config for guild %v: %v", i.GuildID, err)
		reply = "Something went wrong stopping the activity, try again."
	} else {
		reply = "**Interview Match** activity stopped!"
	}

	discordutils.SendFollowup(reply, i.Interaction, bot.session)
}

// PairStatus reports the guild's matching configuration and when the next
// announcement goes out.
func (bot *Bot) PairStatus(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	entry, err := bot.store.GetInterviewMatch(i.GuildID)
	if err != nil {
		discordutils.SendFollowup(
			"No activity is running in this server.",
			i.Interaction,
			bot.session,
		)
		return
	}

	next := interview.NextPost(entry.DayOfWeek, time.Now().In(bot.location))
	reply := fmt.Sprintf(
		"Announcements go to <#%v> every %v with %v. The next one is %v.",
		entry.ChannelID,
		weekdayNames[entry.DayOfWeek],
		entry.Emoji,
		humanize.Time(next),
	)
	discordutils.SendFollowup(reply, i.Interaction, bot.session)
}

// PairRunPost manually triggers the announcement phase for today.
func (bot *Bot) PairRunPost(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	bot.orchestrator.PostPhase(interview.Weekday(time.Now().In(bot.location)))
	discordutils.SendFollowup("Weekly announcement job finished.", i.Interaction, bot.session)
}

// PairRunCollect manually triggers the matching phase for today, unlike the
// scheduled job which looks at yesterday's announcements.
func (bot *Bot) PairRunCollect(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	bot.orchestrator.CollectPhase(interview.Weekday(time.Now().In(bot.location)))
	discordutils.SendFollowup("Weekly matching job finished.", i.Interaction, bot.session)
}

// TimelinesStart enables the monthly hiring announcements for the guild.
func (bot *Bot) TimelinesStart(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	channel := i.ApplicationCommandData().Options[0].ChannelValue(nil)
	entry := models.Announcement{GuildID: i.GuildID, ChannelID: channel.ID}
	if err := bot.store.UpsertAnnouncement(entry); err != nil {
		log.Printf("Failed to save the announcement config for guild %v: %v", i.GuildID, err)
		discordutils.SendFollowup(
			"Something went wrong saving the config, try again.",
			i.Interaction,
			bot.session,
		)
		return
	}

	discordutils.SendFollowup(
		"**Announcement config** updated! Be ready to start receiving more announcements.",
		i.Interaction,
		bot.session,
	)
}

// TimelinesStop disables the monthly hiring announcements for the guild.
func (bot *Bot) TimelinesStop(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	var reply string
	if _, err := bot.store.GetAnnouncement(i.GuildID); errors.Is(err, gorm.ErrRecordNotFound) {
		reply = "No config set! 😱"
	} else if err := bot.store.DeleteAnnouncement(i.GuildID); err != nil {
		log.Printf("Failed to delete the announcement config for guild %v: %v", i.GuildID, err)
		reply = "Something went wrong removing the config, try again."
	} else {
		reply = "**Announcement config** removed!"
	}

	discordutils.SendFollowup(reply, i.Interaction, bot.session)
}

// TimelinesRun manually sends this month's hiring announcement.
func (bot *Bot) TimelinesRun(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	bot.announcer.SendMonthly(time.Now().In(bot.location).Month())
	discordutils.SendFollowup("Monthly announcement job finished.", i.Interaction, bot.session)
}

// WelcomeSet maps the guild's welcome message to the role granted to
// reacting members.
func (bot *Bot) WelcomeSet(i *discordgo.InteractionCreate) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	if !discordutils.MemberIsAdmin(i.Member) {
		discordutils.SendFollowup(notAdminReply, i.Interaction, bot.session)
		return
	}

	data := i.ApplicationCommandData()
	entry := models.WelcomeRole{
		GuildID:   i.GuildID,
		MessageID: data.Options[0].StringValue(),
		RoleID:    data.Options[1].RoleValue(nil, "").ID,
	}
	if err := bot.store.UpsertWelcomeRole(entry); err != nil {
		log.Printf("Failed to save the welcome role for guild %v: %v", i.GuildID, err)
		discordutils.SendFollowup(
			"Something went wrong saving the welcome role, try again.",
			i.Interaction,
			bot.session,
		)
		return
	}

	discordutils.SendFollowup("Welcome role saved.", i.Interaction, bot.session)
}
