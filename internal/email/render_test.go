package email_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/email"
	"invoicegen/internal/port"
)

func TestPasswordResetMessage(t *testing.T) {
	out, err := email.PasswordResetMessage(port.PasswordReset{
		To:        "ann@example.com",
		Name:      "Ann",
		Link:      "https://app.example.com/reset-password?token=abc&x=1",
		ExpiresIn: time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, "Reset your invoice generator password", out.Subject)
	assert.Contains(t, out.Text, "Hi Ann,")
	assert.Contains(t, out.Text, "https://app.example.com/reset-password?token=abc&x=1")
	assert.Contains(t, out.Text, "expires in 1 hour")
	assert.Contains(t, out.HTML, "token=abc&amp;x=1")
}

func TestPasswordResetMessage_NoName(t *testing.T) {
	out, err := email.PasswordResetMessage(port.PasswordReset{Link: "https://x.test/r", ExpiresIn: 30 * time.Minute})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Hi there,")
	assert.Contains(t, out.Text, "30 minutes")
}

func TestContactMessage_EscapesHTML(t *testing.T) {
	out, err := email.ContactMessage(port.ContactMessage{
		Name: "Bob", Email: "bob@example.com", Subject: "Billing", Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "[Contact] Billing", out.Subject)
	assert.NotContains(t, out.HTML, "<script>")
	assert.Contains(t, out.HTML, "&lt;script&gt;")
	assert.Contains(t, out.Text, "From: Bob <bob@example.com>")
	assert.Contains(t, out.Text, "<script>alert(1)</script>")
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", email.HumanDuration(time.Hour))
	assert.Equal(t, "2 hours", email.HumanDuration(2*time.Hour))
	assert.Equal(t, "90 minutes", email.HumanDuration(90*time.Minute))
	assert.Equal(t, "1 minute", email.HumanDuration(time.Minute))
	assert.Equal(t, "45 seconds", email.HumanDuration(45*time.Second))
}
