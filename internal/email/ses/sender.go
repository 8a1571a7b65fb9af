// Package ses delivers email through Amazon SES v2.
package ses

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invoicegen/internal/config"
	"invoicegen/internal/email"
	"invoicegen/internal/port"
)

// Sender implements port.EmailSender.
type Sender struct {
	client    *sesv2.Client
	from      string
	contactTo string
}

var _ port.EmailSender = (*Sender)(nil)

// NewSender builds an SES client in cfg.Region. Contact form messages go to
// cfg.ContactTo, or to the from address when that is empty.
func NewSender(ctx context.Context, cfg config.EmailConfig) (*Sender, error) {
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("ses: from address is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("ses: loading aws config: %w", err)
	}
	contactTo := cfg.ContactTo
	if contactTo == "" {
		contactTo = cfg.FromAddress
	}
	return &Sender{
		client:    sesv2.NewFromConfig(awsCfg),
		from:      FromHeader(cfg.FromName, cfg.FromAddress),
		contactTo: contactTo,
	}, nil
}

// FromHeader formats the RFC 5322 sender, quoting the display name as needed.
func FromHeader(name, address string) string {
	return (&mail.Address{Name: name, Address: address}).String()
}

func (s *Sender) SendPasswordReset(ctx context.Context, msg port.PasswordReset) error {
	body, err := email.PasswordResetMessage(msg)
	if err != nil {
		return err
	}
	return s.send(ctx, []string{msg.To}, nil, body)
}

// SendContactMessage replies go straight back to the visitor.
func (s *Sender) SendContactMessage(ctx context.Context, msg port.ContactMessage) error {
	body, err := email.ContactMessage(msg)
	if err != nil {
		return err
	}
	return s.send(ctx, []string{s.contactTo}, []string{msg.Email}, body)
}

func (s *Sender) send(ctx context.Context, to, replyTo []string, body email.Rendered) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: to},
		ReplyToAddresses: replyTo,
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(body.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(body.HTML), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(body.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses: sending %q: %w", body.Subject, err)
	}
	return nil
}
