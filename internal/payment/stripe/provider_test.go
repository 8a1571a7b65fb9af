package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

const testSecret = "whsec_test"

func sign(payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newTestProvider() *provider {
	return NewProvider(config.StripeConfig{
		SecretKey:     "sk_test_x",
		WebhookSecret: testSecret,
		PriceMonthly:  "price_month",
		PriceLifetime: "price_life",
	}).(*provider)
}

func TestParseWebhook_CheckoutCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1", "object": "event", "type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_123", "object": "checkout.session",
			"payment_status": "paid",
			"client_reference_id": "ref-user",
			"metadata": {"user_id": "meta-user", "plan": "monthly"},
			"subscription": "sub_9"
		}}
	}`)

	ev, err := newTestProvider().ParseWebhook(payload, sign(payload))
	require.NoError(t, err)

	assert.Equal(t, port.PaymentEventCheckoutCompleted, ev.Kind)
	require.NotNil(t, ev.Session)
	assert.Equal(t, "cs_123", ev.Session.ID)
	assert.True(t, ev.Session.Paid)
	assert.Equal(t, "meta-user", ev.Session.UserID)
	assert.Equal(t, domain.PlanMonthly, ev.Session.Plan)
	assert.Equal(t, "sub_9", ev.Session.SubscriptionID)
}

func TestParseWebhook_SubscriptionDeleted(t *testing.T) {
	payload := []byte(`{"id": "evt_2", "object": "event", "type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_9", "object": "subscription"}}}`)

	ev, err := newTestProvider().ParseWebhook(payload, sign(payload))
	require.NoError(t, err)
	assert.Equal(t, port.PaymentEventSubscriptionCanceled, ev.Kind)
	assert.Equal(t, "sub_9", ev.SubscriptionID)
}

func TestParseWebhook_OtherEventIgnored(t *testing.T) {
	payload := []byte(`{"id": "evt_3", "object": "event", "type": "invoice.created", "data": {"object": {}}}`)

	ev, err := newTestProvider().ParseWebhook(payload, sign(payload))
	require.NoError(t, err)
	assert.Equal(t, port.PaymentEventIgnored, ev.Kind)
}

func TestParseWebhook_BadSignature(t *testing.T) {
	payload := []byte(`{"id": "evt_4", "type": "checkout.session.completed"}`)

	_, err := newTestProvider().ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, domain.ErrWebhookSignature)
}

func TestPriceFor(t *testing.T) {
	p := newTestProvider()

	price, mode, err := p.priceFor(domain.PlanMonthly)
	require.NoError(t, err)
	assert.Equal(t, "price_month", price)
	assert.Equal(t, "subscription", mode)

	price, mode, err = p.priceFor(domain.PlanLifetime)
	require.NoError(t, err)
	assert.Equal(t, "price_life", price)
	assert.Equal(t, "payment", mode)

	_, _, err = p.priceFor(domain.PlanFree)
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}
