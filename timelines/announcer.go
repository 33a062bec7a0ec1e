// Package timelines sends the monthly hiring season announcement to every
// guild that opted in.
package timelines

import (
	"fmt"
	"log"
	"time"

	"pairbot/interview"
	"pairbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron"
)

// Sender is the single discord capability the announcer needs.
// *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Store is the persistence the announcer needs, implemented by dal.Store.
type Store interface {
	AllAnnouncements() ([]models.Announcement, error)
}

// Announcer posts the hiring update for the current month to every
// configured guild.
type Announcer struct {
	sender Sender
	store  Store
}

// New returns an Announcer using the given sender and store.
func New(sender Sender, store Store) *Announcer {
	return &Announcer{sender: sender, store: store}
}

// SendMonthly delivers the given month's announcement to all configured
// guilds. A failing guild is logged and does not affect the others.
func (a *Announcer) SendMonthly(month time.Month) {
	entries, err := a.store.AllAnnouncements()
	if err != nil {
		log.Printf("Failed to load announcement configs: %v", err)
		return
	}

	content := EventsFor(month)
	for _, entry := range entries {
		if _, err := a.sender.ChannelMessageSend(entry.ChannelID, content); err != nil {
			log.Printf("Failed to send the monthly update to guild %v: %v", entry.GuildID, err)
		}
	}
}

// NewScheduler returns a cron that fires the announcer at noon on the first
// day of each month, in the bot timezone.
func NewScheduler(announcer *Announcer) (*cron.Cron, error) {
	location, err := time.LoadLocation(interview.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %v: %w", interview.Timezone, err)
	}

	c := cron.NewWithLocation(location)
	err = c.AddFunc("0 0 12 1 * *", func() {
		announcer.SendMonthly(time.Now().In(location).Month())
	})
	if err != nil {
		return nil, fmt.Errorf("registering the monthly job: %w", err)
	}

	return c, nil
}
