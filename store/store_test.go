package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cardhub/common"
	"cardhub/config"
	"cardhub/database"
	"cardhub/models"
	"cardhub/theme"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := common.ConnectDb(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newCard(userID, slug string, active bool) *models.BusinessCard {
	return &models.BusinessCard{
		UserID:   userID,
		Slug:     slug,
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		IsActive: active,
	}
}

func TestNormalizeCard_Legacy(t *testing.T) {
	card := &models.BusinessCard{ThemeID: "retro", Email: "jane@x.com"}

	patch := NormalizeCard(card)
	assert.Len(t, patch, 4)
	assert.Equal(t, theme.DefaultID, card.ThemeID)
	require.Len(t, card.Emails, 1)
	assert.Equal(t, models.ContactEntry{Type: "work", Value: "jane@x.com"}, card.Emails[0])
	assert.NotNil(t, card.Phones)
	assert.Empty(t, card.Phones)
	assert.NotNil(t, card.SocialMedia)

	assert.Empty(t, NormalizeCard(card), "second pass must be a no-op")
}

func TestNormalizeCard_KeepsExplicitEmptyLists(t *testing.T) {
	card := &models.BusinessCard{
		ThemeID:     "dot-dark",
		Email:       "jane@x.com",
		Emails:      []models.ContactEntry{},
		Phones:      []models.ContactEntry{},
		SocialMedia: []models.SocialMedia{},
	}
	assert.Empty(t, NormalizeCard(card))
	assert.Empty(t, card.Emails)
}

func TestGetCard_WritesBackNormalization(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	legacy := &models.BusinessCard{ID: "c1", UserID: "u1", Slug: "jane", FullName: "Jane", Phone: "555", ThemeID: "gone"}
	require.NoError(t, db.Create(legacy).Error)

	card, err := s.GetCard(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultID, card.ThemeID)
	assert.Equal(t, "555", card.Phones[0].Value)

	var raw models.BusinessCard
	require.NoError(t, db.First(&raw, "id = ?", "c1").Error)
	assert.Equal(t, theme.DefaultID, raw.ThemeID)
	require.Len(t, raw.Phones, 1)
	assert.NotNil(t, raw.Emails)
	assert.Empty(t, NormalizeCard(&raw))
}

func TestCreateCard_SlugUniqueAmongActive(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	first := newCard("u1", "jane-doe", true)
	require.NoError(t, s.CreateCard(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := s.CreateCard(ctx, newCard("u2", "jane-doe", true))
	assert.ErrorIs(t, err, ErrSlugTaken)

	draft := newCard("u2", "jane-doe", false)
	require.NoError(t, s.CreateCard(ctx, draft))
	assert.ErrorIs(t, s.SetActive(ctx, draft.ID, true), ErrSlugTaken)

	taken, err := s.SlugTaken(ctx, "jane-doe", first.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.SlugTaken(ctx, "jane-doe", draft.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, s.SetActive(ctx, first.ID, false))
	require.NoError(t, s.SetActive(ctx, draft.ID, true))
}

func TestGetActiveCardBySlug(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateCard(ctx, newCard("u1", "hidden", false)))
	visible := newCard("u1", "jane-doe", true)
	require.NoError(t, s.CreateCard(ctx, visible))

	_, err := s.GetActiveCardBySlug(ctx, "hidden")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetActiveCardBySlug(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetActiveCardBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, visible.ID, got.ID)
	assert.Equal(t, theme.DefaultID, got.ThemeID)
}

func TestUpdateCard(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	card := newCard("u1", "jane-doe", true)
	require.NoError(t, s.CreateCard(ctx, card))

	card.Title = "CTO"
	card.AllowContactSharing = true
	card.UserID = "someone-else"
	require.NoError(t, s.UpdateCard(ctx, card))

	got, err := s.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "CTO", got.Title)
	assert.True(t, got.AllowContactSharing)
	assert.Equal(t, "u1", got.UserID)

	missing := newCard("u1", "x", false)
	missing.ID = "nope"
	assert.ErrorIs(t, s.UpdateCard(ctx, missing), ErrNotFound)
}

func TestListCardsByUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	older := newCard("u1", "a", true)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, s.CreateCard(ctx, older))
	newer := newCard("u1", "b", true)
	require.NoError(t, s.CreateCard(ctx, newer))
	require.NoError(t, s.CreateCard(ctx, newCard("u2", "c", true)))

	cards, err := s.ListCardsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, newer.ID, cards[0].ID)

	all, err := s.ListAllCards(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteCard_RemovesEventsAndContacts(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	card := newCard("u1", "jane-doe", true)
	require.NoError(t, s.CreateCard(ctx, card))
	require.NoError(t, s.AppendEvent(ctx, &models.AnalyticsEvent{CardID: card.ID, Kind: models.EventVisit, Timestamp: time.Now(), Device: models.DeviceDesktop}))
	require.NoError(t, s.CreateContactShare(ctx, &models.ContactShare{CardID: card.ID, VisitorName: "Bob", VisitorEmail: "bob@x.com"}))

	require.NoError(t, s.DeleteCard(ctx, card.ID))
	assert.ErrorIs(t, s.DeleteCard(ctx, card.ID), ErrNotFound)

	events, err := s.ListEvents(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	shares, err := s.ListContactShares(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestListEvents_MostRecentFirst(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, kind := range []models.EventKind{models.EventVisit, models.EventEmailClick, models.EventVCardDownload} {
		require.NoError(t, s.AppendEvent(ctx, &models.AnalyticsEvent{
			CardID:    "c1",
			Kind:      kind,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Device:    models.DeviceMobile,
		}))
	}
	require.NoError(t, s.AppendEvent(ctx, &models.AnalyticsEvent{CardID: "c2", Kind: models.EventVisit, Timestamp: base, Device: models.DeviceMobile}))

	events, err := s.ListEvents(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, models.EventVCardDownload, events[0].Kind)
	assert.Equal(t, models.EventVisit, events[2].Kind)
}

func TestUsersAndProfiles(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	user := &models.User{Email: " Jane@X.com ", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Equal(t, "jane@x.com", user.Email)

	err := s.CreateUser(ctx, &models.User{Email: "jane@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := s.GetUserByEmail(ctx, "JANE@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	profile := &models.Profile{ID: user.ID, Email: user.Email, FullName: "Jane"}
	require.NoError(t, s.CreateProfile(ctx, profile))
	require.NoError(t, s.CreateProfile(ctx, &models.Profile{ID: user.ID, Email: user.Email, FullName: "Jane Doe"}))

	p, err := s.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName)
}

func TestTelegramSettings_Upsert(t *testing.T) {
	s := New(setupTestDB(t))
	ctx := context.Background()

	_, err := s.GetTelegramSettings(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SaveTelegramSettings(ctx, &models.TelegramSettings{UserID: "u1", BotToken: "t1", ChatID: 1, Enabled: true}))
	require.NoError(t, s.SaveTelegramSettings(ctx, &models.TelegramSettings{UserID: "u1", BotToken: "t2", ChatID: 2, Enabled: false}))

	got, err := s.GetTelegramSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.BotToken)
	assert.Equal(t, int64(2), got.ChatID)
	assert.False(t, got.Enabled)
}
