package notify

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	lru "github.com/hashicorp/golang-lru/v2"

	"cardhub/models"
	"cardhub/store"
)

type SettingsReader interface {
	GetTelegramSettings(ctx context.Context, userID string) (*models.TelegramSettings, error)
}

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Dialer opens a bot for a token.
type Dialer func(token string) (Sender, error)

func DialBotAPI(token string) (Sender, error) {
	return tgbotapi.NewBotAPI(token)
}

// Telegram pushes the message to the chat configured by the card owner.
// Bots are kept per token so the handshake happens once.
type Telegram struct {
	settings SettingsReader
	dial     Dialer
	bots     *lru.Cache[string, Sender]
}

func NewTelegram(settings SettingsReader, dial Dialer) *Telegram {
	if dial == nil {
		dial = DialBotAPI
	}
	bots, _ := lru.New[string, Sender](256)
	return &Telegram{settings: settings, dial: dial, bots: bots}
}

func (t *Telegram) ContactShared(ctx context.Context, card *models.BusinessCard, share *models.ContactShare) error {
	s, err := t.settings.GetTelegramSettings(ctx, card.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSkipped
	}
	if err != nil {
		return err
	}
	if !s.Enabled || s.BotToken == "" || s.ChatID == 0 {
		return ErrSkipped
	}

	bot, ok := t.bots.Get(s.BotToken)
	if !ok {
		bot, err = t.dial(s.BotToken)
		if err != nil {
			return fmt.Errorf("telegram bot: %w", err)
		}
		t.bots.Add(s.BotToken, bot)
	}

	msg := tgbotapi.NewMessage(s.ChatID, Message(card, share))
	if _, err := bot.Send(msg); err != nil {
		t.bots.Remove(s.BotToken)
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
