// Package notify keeps short-lived user notifications (toasts).
package notify

import (
	"sync"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
)

// Notification is one toast message.
type Notification struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Center holds active notifications until they expire or are dismissed.
type Center struct {
	ttl   time.Duration
	limit int
	now   func() time.Time
	seq   Sequencer

	mu    sync.Mutex
	items []Notification
}

// NewCenter creates a Center keeping at most limit notifications for ttl each.
func NewCenter(ttl time.Duration, limit int) *Center {
	if ttl <= 0 {
		ttl = 2 * time.Second
	}
	if limit <= 0 {
		limit = 20
	}
	return &Center{ttl: ttl, limit: limit, now: time.Now}
}

// SetClock replaces the time source.
func (c *Center) SetClock(now func() time.Time) { c.now = now }

// Push records message and returns the stored notification. The oldest
// notification is dropped when the limit is reached.
func (c *Center) Push(message string) Notification {
	at := c.now().UTC()
	n := Notification{
		ID:        c.seq.Next(),
		Message:   message,
		CreatedAt: at,
		ExpiresAt: at.Add(c.ttl),
	}
	c.mu.Lock()
	c.pruneLocked(at)
	if len(c.items) >= c.limit {
		c.items = c.items[len(c.items)-c.limit+1:]
	}
	c.items = append(c.items, n)
	c.mu.Unlock()
	obs.Logger.Info("notification", "id", n.ID, "message", n.Message)
	return n
}

// Active returns unexpired notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now().UTC())
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Dismiss removes the notification with id and reports whether it was active.
func (c *Center) Dismiss(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now().UTC())
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) pruneLocked(at time.Time) {
	kept := c.items[:0]
	for _, n := range c.items {
		if at.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	c.items = kept
}
