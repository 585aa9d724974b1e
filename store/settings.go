package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"cardhub/models"
)

func (s *Store) GetTelegramSettings(ctx context.Context, userID string) (*models.TelegramSettings, error) {
	var settings models.TelegramSettings
	if err := s.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &settings, nil
}

// SaveTelegramSettings creates or replaces the owner's settings.
func (s *Store) SaveTelegramSettings(ctx context.Context, settings *models.TelegramSettings) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bot_token", "chat_id", "enabled", "updated_at"}),
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("save telegram settings: %w", err)
	}
	return nil
}
