package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cardhub/models"
)

func (s *Store) CreateContactShare(ctx context.Context, share *models.ContactShare) error {
	if share.ID == "" {
		share.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return fmt.Errorf("create contact share: %w", err)
	}
	return nil
}

// ListContactShares returns the contacts left on a card, newest first.
func (s *Store) ListContactShares(ctx context.Context, cardID string) ([]models.ContactShare, error) {
	var shares []models.ContactShare
	err := s.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("list contact shares: %w", err)
	}
	return shares, nil
}
