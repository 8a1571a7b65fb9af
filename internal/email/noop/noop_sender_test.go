package noop_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/email/noop"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

func TestSender_LogsInsteadOfSending(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.SetupWriter(config.LogConfig{Level: "info", Format: "json"}, &buf))

	s := noop.NewSender()

	require.NoError(t, s.SendPasswordReset(context.Background(), port.PasswordReset{
		To: "a@b.co", Name: "Ann", Link: "http://localhost:5173/reset-password?token=t", ExpiresIn: time.Hour,
	}))
	assert.Contains(t, buf.String(), `"link":"http://localhost:5173/reset-password?token=t"`)

	require.NoError(t, s.SendContactMessage(context.Background(), port.ContactMessage{
		Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello",
	}))
	assert.Contains(t, buf.String(), `"subject":"[Contact] Hi"`)
}
