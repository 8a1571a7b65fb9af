package service

import (
	"sync"

	"github.com/google/uuid"

	"invoicegen/internal/invoice"
)

const previewBuffer = 16

// PreviewHub fans workspace changes out to every open preview connection of a user.
// A subscriber whose buffer is full is dropped and its channel closed.
type PreviewHub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan invoice.InvoiceData]struct{}
}

// NewPreviewHub creates an empty hub.
func NewPreviewHub() *PreviewHub {
	return &PreviewHub{subs: make(map[uuid.UUID]map[chan invoice.InvoiceData]struct{})}
}

// Subscribe registers a new subscriber for userID. The returned func
// unsubscribes and is safe to call more than once.
func (h *PreviewHub) Subscribe(userID uuid.UUID) (<-chan invoice.InvoiceData, func()) {
	ch := make(chan invoice.InvoiceData, previewBuffer)

	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[chan invoice.InvoiceData]struct{})
		h.subs[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() { h.remove(userID, ch) }
}

// Publish delivers data to userID's subscribers without blocking.
func (h *PreviewHub) Publish(userID uuid.UUID, data invoice.InvoiceData) {
	var slow []chan invoice.InvoiceData

	h.mu.RLock()
	for ch := range h.subs[userID] {
		select {
		case ch <- data:
		default:
			slow = append(slow, ch)
		}
	}
	h.mu.RUnlock()

	for _, ch := range slow {
		h.remove(userID, ch)
	}
}

// Subscribers returns the number of open subscriptions for userID.
func (h *PreviewHub) Subscribers(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

func (h *PreviewHub) remove(userID uuid.UUID, ch chan invoice.InvoiceData) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[userID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(h.subs, userID)
	}
}
