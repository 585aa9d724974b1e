package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardhub/models"
)

// CreateCard assigns an id and inserts the card. An active card must not
// reuse the slug of another active card.
func (s *Store) CreateCard(ctx context.Context, card *models.BusinessCard) error {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	NormalizeCard(card)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if card.IsActive {
			if err := slugFree(tx, card.Slug, card.ID); err != nil {
				return err
			}
		}
		if err := tx.Create(card).Error; err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		return nil
	})
}

// UpdateCard writes every mutable field of card. Owner and creation time are
// never changed.
func (s *Store) UpdateCard(ctx context.Context, card *models.BusinessCard) error {
	NormalizeCard(card)
	card.UpdatedAt = time.Now()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if card.IsActive {
			if err := slugFree(tx, card.Slug, card.ID); err != nil {
				return err
			}
		}
		res := tx.Model(&models.BusinessCard{}).
			Where("id = ?", card.ID).
			Select("*").
			Omit("id", "user_id", "created_at").
			Updates(card)
		if res.Error != nil {
			return fmt.Errorf("update card: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SetActive toggles public visibility, enforcing slug uniqueness on activation.
func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.BusinessCard
		if err := tx.Select("id", "slug").First(&card, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if active {
			if err := slugFree(tx, card.Slug, card.ID); err != nil {
				return err
			}
		}
		return tx.Model(&models.BusinessCard{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_active": active, "updated_at": time.Now()}).Error
	})
}

// DeleteCard removes the card together with its events and contact shares.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.BusinessCard{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete card: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.AnalyticsEvent{}).Error; err != nil {
			return fmt.Errorf("delete card events: %w", err)
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.ContactShare{}).Error; err != nil {
			return fmt.Errorf("delete card contacts: %w", err)
		}
		return nil
	})
}

func (s *Store) GetCard(ctx context.Context, id string) (*models.BusinessCard, error) {
	var card models.BusinessCard
	if err := s.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	s.normalize(ctx, &card)
	return &card, nil
}

// GetActiveCardBySlug resolves a public card. Inactive cards are not found.
func (s *Store) GetActiveCardBySlug(ctx context.Context, slug string) (*models.BusinessCard, error) {
	var card models.BusinessCard
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&card).Error
	if err != nil {
		return nil, notFound(err)
	}
	s.normalize(ctx, &card)
	return &card, nil
}

// ListCardsByUser returns the owner's cards, newest first.
func (s *Store) ListCardsByUser(ctx context.Context, userID string) ([]models.BusinessCard, error) {
	return s.listCards(ctx, s.db.Where("user_id = ?", userID))
}

// ListAllCards returns every card on the platform, newest first.
func (s *Store) ListAllCards(ctx context.Context) ([]models.BusinessCard, error) {
	return s.listCards(ctx, s.db)
}

func (s *Store) listCards(ctx context.Context, q *gorm.DB) ([]models.BusinessCard, error) {
	var cards []models.BusinessCard
	if err := q.WithContext(ctx).Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	for i := range cards {
		s.normalize(ctx, &cards[i])
	}
	return cards, nil
}

// SlugTaken reports whether an active card other than exceptID uses slug.
func (s *Store) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	err := slugFree(s.db.WithContext(ctx), slug, exceptID)
	if errors.Is(err, ErrSlugTaken) {
		return true, nil
	}
	return false, err
}

func slugFree(tx *gorm.DB, slug, exceptID string) error {
	var n int64
	err := tx.Model(&models.BusinessCard{}).
		Where("slug = ? AND is_active = ? AND id <> ?", slug, true, exceptID).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if n > 0 {
		return ErrSlugTaken
	}
	return nil
}
