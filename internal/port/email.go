package port

import (
	"context"
	"time"
)

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// PasswordReset is the notice mailed to a user who asked to reset a password.
// Link is the complete frontend URL carrying the reset token.
type PasswordReset struct {
	To        string
	Name      string
	Link      string
	ExpiresIn time.Duration
}

// EmailSender delivers the transactional messages of the app.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}
