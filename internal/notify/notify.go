package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification for the operator UI.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one transient, dismissible operator message.
type Notification struct {
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	expiresAt time.Time
}

// Center buffers ephemeral notifications. Entries expire after a fixed TTL
// and are dropped on the next read; nothing is persisted.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries []Notification
	now     func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Push adds a notification.
func (c *Center) Push(message string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries = append(c.entries, Notification{
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		expiresAt: now.Add(c.ttl),
	})
}

// Active returns the notifications that have not expired yet, oldest first,
// pruning the rest.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.entries[:0]
	for _, n := range c.entries {
		if n.expiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	c.entries = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}
