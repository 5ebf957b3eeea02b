// Package notify fans out admin dashboard events (new contact messages) to
// connected WebSocket clients. Delivery is best-effort: a slow subscriber
// drops events rather than blocking the publisher.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Event is what a dashboard subscriber receives.
type Event struct {
	Type      string    `json:"type"`
	MessageID string    `json:"messageId,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// EventMessageReceived announces a new contact-form submission.
const EventMessageReceived = "message.received"

const subscriberQueueSize = 16

// Hub owns the subscriber set.
type Hub struct {
	log *slog.Logger

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub constructs a Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{log: log, subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberQueueSize)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber that has queue room.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn("notify.drop", "type", ev.Type)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
