// Package noop stands in for a mail provider in development. Messages are
// rendered and logged, never delivered.
package noop

import (
	"context"

	"invoicegen/internal/email"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

// Sender implements port.EmailSender.
type Sender struct{}

// NewSender returns a Sender.
func NewSender() *Sender {
	return &Sender{}
}

// SendPasswordReset logs the link so it can be followed by hand.
func (s *Sender) SendPasswordReset(_ context.Context, msg port.PasswordReset) error {
	body, err := email.PasswordResetMessage(msg)
	if err != nil {
		return err
	}
	log := logger.WithComponent("email.noop")
	log.Info().Str("to", msg.To).Str("subject", body.Subject).Str("link", msg.Link).Msg("password reset email not sent")
	return nil
}

func (s *Sender) SendContactMessage(_ context.Context, msg port.ContactMessage) error {
	body, err := email.ContactMessage(msg)
	if err != nil {
		return err
	}
	log := logger.WithComponent("email.noop")
	log.Info().
		Str("reply_to", msg.Email).
		Str("subject", body.Subject).
		Int("length", len(body.Text)).
		Msg("contact message not sent")
	return nil
}
