package ses_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/email/ses"
)

func TestFromHeader(t *testing.T) {
	assert.Equal(t, `"Invoice Generator" <noreply@example.com>`, ses.FromHeader("Invoice Generator", "noreply@example.com"))
	assert.Equal(t, "<noreply@example.com>", ses.FromHeader("", "noreply@example.com"))
}

func TestNewSender_RequiresFromAddress(t *testing.T) {
	_, err := ses.NewSender(context.Background(), config.EmailConfig{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from address")
}
