package store

import (
	"context"
	"fmt"

	"cardhub/models"
)

// AppendEvent inserts one analytics event. Events are never updated.
func (s *Store) AppendEvent(ctx context.Context, e *models.AnalyticsEvent) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns every event of a card, most recent first.
func (s *Store) ListEvents(ctx context.Context, cardID string) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := s.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
