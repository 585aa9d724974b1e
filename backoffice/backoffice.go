// Package backoffice holds the operator endpoints under /$. Operators are
// ordinary owners whose email is listed in backoffice.emails.
package backoffice

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"cardhub/cache"
	"cardhub/config"
	"cardhub/logging"
	"cardhub/models"
	"cardhub/store"
)

// sessionUserKey is shared with the owner login.
const sessionUserKey = "user_id"

type BackofficeModule struct {
	store *store.Store
	cache *cache.Dir
	cfg   *config.Config
}

func NewBackofficeModule(s *store.Store, dir *cache.Dir, cfg *config.Config) *BackofficeModule {
	return &BackofficeModule{store: s, cache: dir, cfg: cfg}
}

func (b *BackofficeModule) RegisterRoutes(router *gin.Engine) {
	backofficeGroup := router.Group("/$")
	backofficeGroup.Use(b.requireBackofficeAuth)
	{
		backofficeGroup.GET("/cards", b.cards)
		backofficeGroup.POST("/cards/:id/toggle-active", b.toggleActive)
		backofficeGroup.POST("/cache/clear", b.clearCache)
		backofficeGroup.POST("/cache/clear-old", b.clearOldCache)
	}
}

// requireBackofficeAuth lets through signed-in owners with an operator email.
func (b *BackofficeModule) requireBackofficeAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(sessionUserKey).(string)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := b.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if !b.cfg.IsBackofficeEmail(user.Email) {
		logging.Warn().Str("user_id", user.ID).Msg("backoffice access denied")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized"})
		return
	}

	c.Set("backoffice_user", user)
	c.Next()
}

type cardRow struct {
	models.BusinessCard
	PublicURL string `json:"public_url"`
}

func (b *BackofficeModule) cards(c *gin.Context) {
	cards, err := b.store.ListAllCards(c.Request.Context())
	if err != nil {
		logging.Error().Err(err).Msg("failed to list cards")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cards"})
		return
	}

	rows := make([]cardRow, len(cards))
	for i, card := range cards {
		rows[i] = cardRow{BusinessCard: card, PublicURL: b.cfg.CardURL(card.Slug)}
	}
	c.JSON(http.StatusOK, rows)
}

func (b *BackofficeModule) toggleActive(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	card, err := b.store.GetCard(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		logging.Error().Err(err).Str("card_id", id).Msg("failed to load card")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update card"})
		return
	}

	active := !card.IsActive
	if err := b.store.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "another active card already uses this address"})
			return
		}
		logging.Error().Err(err).Str("card_id", id).Msg("failed to toggle card")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update card"})
		return
	}

	logging.Info().Str("card_id", id).Bool("active", active).Msg("card visibility changed by operator")
	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": active})
}

func (b *BackofficeModule) clearCache(c *gin.Context) {
	removed, err := b.cache.ClearAll()
	if err != nil {
		logging.Error().Err(err).Msg("failed to clear cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

// clearOldCache removes entries older than the configured cache age, or the
// ?older_than= duration when given.
func (b *BackofficeModule) clearOldCache(c *gin.Context) {
	maxAge := b.cfg.QR.CacheMaxAge
	if v := c.Query("older_than"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "older_than must be a positive duration such as 24h"})
			return
		}
		maxAge = d
	}

	removed, err := b.cache.ClearOld(maxAge)
	if err != nil {
		logging.Error().Err(err).Msg("failed to clear old cache entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}
