// Package notify tells card owners that a visitor left their contact details.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardhub/logging"
	"cardhub/metrics"
	"cardhub/models"
)

// ErrSkipped is returned by a channel the owner has not set up.
var ErrSkipped = errors.New("notification channel not configured")

type Notifier interface {
	ContactShared(ctx context.Context, card *models.BusinessCard, share *models.ContactShare) error
}

// Channel is a named Notifier.
type Channel struct {
	Name string
	Notifier
}

// Multi fans a notification out to every channel. Failures are logged and
// counted; they never reach the caller.
type Multi struct {
	channels []Channel
}

func NewMulti(channels ...Channel) *Multi {
	return &Multi{channels: channels}
}

func (m *Multi) ContactShared(ctx context.Context, card *models.BusinessCard, share *models.ContactShare) error {
	for _, ch := range m.channels {
		err := ch.ContactShared(ctx, card, share)
		switch {
		case err == nil:
			metrics.Notifications.WithLabelValues(ch.Name, "sent").Inc()
		case errors.Is(err, ErrSkipped):
			metrics.Notifications.WithLabelValues(ch.Name, "skipped").Inc()
		default:
			metrics.Notifications.WithLabelValues(ch.Name, "failed").Inc()
			logging.Warn().Err(err).
				Str("channel", ch.Name).
				Str("card_id", card.ID).
				Msg("contact share notification failed")
		}
	}
	return nil
}

// Message is the plain text body shared by every channel.
func Message(card *models.BusinessCard, share *models.ContactShare) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact from your card %q\n\n", card.FullName)
	fmt.Fprintf(&b, "Name: %s\n", share.VisitorName)
	fmt.Fprintf(&b, "Email: %s\n", share.VisitorEmail)
	if share.VisitorPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", share.VisitorPhone)
	}
	if share.VisitorCompany != "" {
		fmt.Fprintf(&b, "Company: %s\n", share.VisitorCompany)
	}
	if share.VisitorNotes != "" {
		fmt.Fprintf(&b, "\n%s\n", share.VisitorNotes)
	}
	return b.String()
}
