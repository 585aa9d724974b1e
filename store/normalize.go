package store

import (
	"context"

	"cardhub/logging"
	"cardhub/models"
	"cardhub/theme"
)

// NormalizeCard brings a card read from storage up to the current shape:
// a known theme id, non-nil contact and social lists, and the legacy single
// email/phone promoted into the typed lists. It returns the changed columns,
// empty when the card was already normalized.
func NormalizeCard(card *models.BusinessCard) map[string]any {
	patch := map[string]any{}

	if !theme.Known(card.ThemeID) {
		card.ThemeID = theme.DefaultID
		patch["theme_id"] = card.ThemeID
	}

	if card.Emails == nil {
		card.Emails = promote(card.Email)
		patch["emails"] = card.Emails
	}
	if card.Phones == nil {
		card.Phones = promote(card.Phone)
		patch["phones"] = card.Phones
	}
	if card.SocialMedia == nil {
		card.SocialMedia = []models.SocialMedia{}
		patch["social_media"] = card.SocialMedia
	}

	return patch
}

func promote(value string) []models.ContactEntry {
	if value == "" {
		return []models.ContactEntry{}
	}
	return []models.ContactEntry{{Type: "work", Value: value}}
}

// normalize applies NormalizeCard and persists the patched columns. A failed
// write-back is logged; the caller still gets the normalized card.
func (s *Store) normalize(ctx context.Context, card *models.BusinessCard) {
	patch := NormalizeCard(card)
	if len(patch) == 0 {
		return
	}

	err := s.db.WithContext(ctx).
		Model(&models.BusinessCard{}).
		Where("id = ?", card.ID).
		UpdateColumns(patch).Error
	if err != nil {
		logging.Warn().Err(err).Str("card_id", card.ID).Msg("card normalization write-back failed")
		return
	}
	logging.Debug().Str("card_id", card.ID).Int("columns", len(patch)).Msg("card normalized")
}
