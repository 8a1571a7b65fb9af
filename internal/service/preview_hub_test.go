package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"invoicegen/internal/invoice"
	"invoicegen/internal/service"
)

func TestPreviewHub_PublishReachesOnlyOwner(t *testing.T) {
	hub := service.NewPreviewHub()
	alice, bob := uuid.New(), uuid.New()

	a1, unsubA1 := hub.Subscribe(alice)
	defer unsubA1()
	a2, unsubA2 := hub.Subscribe(alice)
	defer unsubA2()
	b, unsubB := hub.Subscribe(bob)
	defer unsubB()

	hub.Publish(alice, invoice.InvoiceData{InvoiceNumber: "INV-1"})

	assert.Equal(t, "INV-1", (<-a1).InvoiceNumber)
	assert.Equal(t, "INV-1", (<-a2).InvoiceNumber)
	assert.Empty(t, b)
	assert.Equal(t, 2, hub.Subscribers(alice))
}

func TestPreviewHub_UnsubscribeClosesAndIsIdempotent(t *testing.T) {
	hub := service.NewPreviewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers(userID))

	// publishing with no subscribers is a no-op
	hub.Publish(userID, invoice.InvoiceData{})
}

func TestPreviewHub_SlowSubscriberDropped(t *testing.T) {
	hub := service.NewPreviewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	for i := 0; i < cap(ch)+1; i++ {
		hub.Publish(userID, invoice.InvoiceData{})
	}

	assert.Equal(t, 0, hub.Subscribers(userID))
	received := 0
	for range ch {
		received++
	}
	assert.Equal(t, cap(ch), received)
}
