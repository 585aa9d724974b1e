package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"cardhub/config"
	"cardhub/models"
)

type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Email mails the notification to the owner's account address.
type Email struct {
	cfg      config.SMTPConfig
	users    UserReader
	sendMail SendMailFunc
}

func NewEmail(cfg config.SMTPConfig, users UserReader) *Email {
	return &Email{cfg: cfg, users: users, sendMail: smtp.SendMail}
}

func (e *Email) ContactShared(ctx context.Context, card *models.BusinessCard, share *models.ContactShare) error {
	if !e.cfg.Configured() {
		return ErrSkipped
	}

	owner, err := e.users.GetUser(ctx, card.UserID)
	if err != nil {
		return fmt.Errorf("load card owner: %w", err)
	}

	subject := fmt.Sprintf("New contact: %s", share.VisitorName)
	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Reply-To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.cfg.From, owner.Email, share.VisitorEmail, subject, Message(card, share))

	var auth smtp.Auth
	if e.cfg.User != "" {
		auth = smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%s", e.cfg.Host, e.cfg.Port)

	if err := e.sendMail(addr, auth, e.cfg.From, []string{owner.Email}, []byte(message)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
