package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardhub/logging"
	"cardhub/models"
	"cardhub/store"
	"cardhub/validation"
)

type telegramInput struct {
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,max=128"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
	Enabled  bool   `json:"enabled"`
}

type telegramView struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
	Enabled  bool   `json:"enabled"`
}

// maskToken keeps the last four characters of a bot token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func viewOf(s *models.TelegramSettings) telegramView {
	return telegramView{BotToken: maskToken(s.BotToken), ChatID: s.ChatID, Enabled: s.Enabled}
}

func (a *AdminModule) telegramSettings(c *gin.Context) {
	s, err := a.store.GetTelegramSettings(c.Request.Context(), currentUser(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, telegramView{})
		return
	}
	if err != nil {
		logging.Error().Err(err).Msg("failed to load telegram settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

func (a *AdminModule) saveTelegramSettings(c *gin.Context) {
	var in telegramInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in.BotToken = strings.TrimSpace(in.BotToken)
	if verr := validation.ValidateStruct(&in); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields()})
		return
	}

	s := &models.TelegramSettings{
		UserID:   currentUser(c),
		BotToken: in.BotToken,
		ChatID:   in.ChatID,
		Enabled:  in.Enabled,
	}
	if err := a.store.SaveTelegramSettings(c.Request.Context(), s); err != nil {
		logging.Error().Err(err).Msg("failed to save telegram settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save settings"})
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}
