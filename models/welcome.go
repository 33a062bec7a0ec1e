package models

import "gorm.io/gorm"

// WelcomeRole maps a guild's welcome message to the role granted to anyone
// who reacts to it.
type WelcomeRole struct {
	gorm.Model
	GuildID   string `gorm:"uniqueIndex"`
	MessageID string
	RoleID    string
}
