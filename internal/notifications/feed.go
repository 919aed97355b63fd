// Package notifications keeps a short-lived per-owner feed of toast messages.
// Toasts are ephemeral UI hints, never persisted; the feed is drained when the
// client fetches it.
package notifications

import (
	"sync"
	"time"
)

// DefaultCapacity bounds each owner's feed when no capacity is configured.
const DefaultCapacity = 20

// Toast is one pending message for an owner.
type Toast struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is a bounded in-memory toast queue keyed by cart owner. When a feed is
// full the oldest toast is dropped.
type Feed struct {
	mu       sync.Mutex
	capacity int
	byOwner  map[string][]Toast
	now      func() time.Time
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		byOwner:  make(map[string][]Toast),
		now:      time.Now,
	}
}

// Push appends a toast for the owner, evicting the oldest at capacity.
func (f *Feed) Push(owner, message string) {
	if owner == "" || message == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	queue := append(f.byOwner[owner], Toast{Message: message, CreatedAt: f.now()})
	if len(queue) > f.capacity {
		queue = queue[len(queue)-f.capacity:]
	}
	f.byOwner[owner] = queue
}

// Drain returns and clears the owner's pending toasts, oldest first.
func (f *Feed) Drain(owner string) []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	queue := f.byOwner[owner]
	if len(queue) == 0 {
		return nil
	}
	delete(f.byOwner, owner)
	return queue
}
