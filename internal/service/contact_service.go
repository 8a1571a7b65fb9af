package service

import (
	"context"
	"strings"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// ContactInput is the DTO for contact form submissions.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactService forwards contact form submissions.
type ContactService interface {
	Send(ctx context.Context, input ContactInput) error
}

type contactService struct {
	sender port.EmailSender
}

// NewContactService creates a new ContactService.
func NewContactService(sender port.EmailSender) ContactService {
	return &contactService{sender: sender}
}

func (s *contactService) Send(ctx context.Context, input ContactInput) error {
	msg := port.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return domain.ErrMissingField
	}
	if err := s.sender.SendContactMessage(ctx, msg); err != nil {
		return domain.ErrEmailDelivery
	}
	return nil
}
