package timelines

import (
	"errors"
	"testing"
	"time"

	"pairbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent     map[string][]string
	failures map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		sent:     make(map[string][]string),
		failures: make(map[string]error),
	}
}

func (f *fakeSender) ChannelMessageSend(
	channelID, content string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if err := f.failures[channelID]; err != nil {
		return nil, err
	}
	f.sent[channelID] = append(f.sent[channelID], content)
	return &discordgo.Message{ChannelID: channelID}, nil
}

type fakeAnnouncementStore struct {
	entries []models.Announcement
	err     error
}

func (f *fakeAnnouncementStore) AllAnnouncements() ([]models.Announcement, error) {
	return f.entries, f.err
}

func TestSendMonthlyReachesEveryGuild(t *testing.T) {
	sender := newFakeSender()
	store := &fakeAnnouncementStore{entries: []models.Announcement{
		{GuildID: "g1", ChannelID: "c1"},
		{GuildID: "g2", ChannelID: "c2"},
	}}

	New(sender, store).SendMonthly(time.October)

	require.Len(t, sender.sent["c1"], 1)
	require.Len(t, sender.sent["c2"], 1)
	assert.Equal(t, EventsFor(time.October), sender.sent["c1"][0])
}

func TestSendMonthlyGuildIsolation(t *testing.T) {
	sender := newFakeSender()
	sender.failures["c1"] = errors.New("missing permissions")
	store := &fakeAnnouncementStore{entries: []models.Announcement{
		{GuildID: "g1", ChannelID: "c1"},
		{GuildID: "g2", ChannelID: "c2"},
	}}

	New(sender, store).SendMonthly(time.May)

	assert.Empty(t, sender.sent["c1"])
	require.Len(t, sender.sent["c2"], 1)
}

func TestSendMonthlyStoreError(t *testing.T) {
	sender := newFakeSender()
	store := &fakeAnnouncementStore{err: errors.New("db closed")}

	New(sender, store).SendMonthly(time.May)

	assert.Empty(t, sender.sent)
}

func TestEventsFor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Summer"},
		{time.October, "Summer"},
		{time.April, "Fall"},
		{time.May, "Fall"},
		{time.August, "Winter"},
		{time.September, "Winter"},
		{time.February, "Not this month"},
		{time.July, "Not this month"},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Contains(t, EventsFor(tt.month), tt.want)
		})
	}
}

func TestNewScheduler(t *testing.T) {
	c, err := NewScheduler(New(newFakeSender(), &fakeAnnouncementStore{}))

	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}
