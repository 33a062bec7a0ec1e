package models

import "gorm.io/gorm"

// InterviewMatch holds one guild's weekly interview matching configuration.
// DayOfWeek uses Monday=0 through Sunday=6. MessageID points at the most
// recent announcement and is empty until the first post.
type InterviewMatch struct {
	gorm.Model
	GuildID   string `gorm:"uniqueIndex"`
	AuthorID  string
	ChannelID string
	DayOfWeek int
	Emoji     string
	MessageID string
}
