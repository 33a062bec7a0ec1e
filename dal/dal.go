package dal

import (
	"log"

	"pairbot/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitDB creates and returns a database connection.
func InitDB(dbPath string) *gorm.DB {
	db, err := gorm.Open(
		sqlite.Open(dbPath),
		&gorm.Config{},
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	log.Println("Connected to database.")

	db.AutoMigrate(
		&models.InterviewMatch{},
		&models.Announcement{},
		&models.WelcomeRole{},
	)
	log.Println("Migrated database.")

	return db
}

// Store wraps the database connection with the bot's persistence operations.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UpsertInterviewMatch inserts or replaces a guild's matching configuration.
// The day of the week is normalized into the 0-6 range.
func (s *Store) UpsertInterviewMatch(entry models.InterviewMatch) error {
	entry.DayOfWeek = ((entry.DayOfWeek % 7) + 7) % 7
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"author_id", "channel_id", "day_of_week", "emoji", "message_id",
		}),
	}).Create(&entry).Error
}

// GetInterviewMatch gets the matching configuration for the given guild.
func (s *Store) GetInterviewMatch(guildID string) (*models.InterviewMatch, error) {
	var entry models.InterviewMatch
	err := s.db.Where(
		&models.InterviewMatch{GuildID: guildID},
	).Take(&entry).Error

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// InterviewMatchesForDay returns every guild configured for the given
// weekday.
func (s *Store) InterviewMatchesForDay(day int) ([]models.InterviewMatch, error) {
	var entries []models.InterviewMatch
	err := s.db.Where("day_of_week = ?", day).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SetInterviewMessageID records the id of the most recent announcement
// message for the given guild.
func (s *Store) SetInterviewMessageID(guildID, messageID string) error {
	return s.db.Model(&models.InterviewMatch{}).
		Where("guild_id = ?", guildID).
		Update("message_id", messageID).Error
}

// DeleteInterviewMatch removes a guild's matching configuration.
func (s *Store) DeleteInterviewMatch(guildID string) error {
	return s.db.Unscoped().
		Where("guild_id = ?", guildID).
		Delete(&models.InterviewMatch{}).Error
}

// UpsertAnnouncement inserts or updates a guild's announcement channel.
func (s *Store) UpsertAnnouncement(entry models.Announcement) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id"}),
	}).Create(&entry).Error
}

// GetAnnouncement gets the announcement configuration for the given guild.
func (s *Store) GetAnnouncement(guildID string) (*models.Announcement, error) {
	var entry models.Announcement
	err := s.db.Where(
		&models.Announcement{GuildID: guildID},
	).Take(&entry).Error

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// AllAnnouncements returns the announcement configuration of every guild.
func (s *Store) AllAnnouncements() ([]models.Announcement, error) {
	var entries []models.Announcement
	err := s.db.Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteAnnouncement removes a guild's announcement configuration.
func (s *Store) DeleteAnnouncement(guildID string) error {
	return s.db.Unscoped().
		Where("guild_id = ?", guildID).
		Delete(&models.Announcement{}).Error
}

// UpsertWelcomeRole inserts or updates a guild's welcome role mapping.
func (s *Store) UpsertWelcomeRole(entry models.WelcomeRole) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"message_id", "role_id"}),
	}).Create(&entry).Error
}

// WelcomeRoleByMessage returns the welcome role mapping for the given guild
// if it targets the given message.
func (s *Store) WelcomeRoleByMessage(guildID, messageID string) (*models.WelcomeRole, error) {
	var entry models.WelcomeRole
	err := s.db.Where(
		&models.WelcomeRole{GuildID: guildID, MessageID: messageID},
	).Take(&entry).Error

	if err != nil {
		return nil, err
	}

	return &entry, nil
}
