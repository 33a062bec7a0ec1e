package models

import "gorm.io/gorm"

// Announcement holds the channel a guild receives the monthly hiring
// season updates in.
type Announcement struct {
	gorm.Model
	GuildID   string `gorm:"uniqueIndex"`
	ChannelID string
}
