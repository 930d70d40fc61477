package images

import (
	"context"
	"sync"
)

// Observer defers photo loading until the render collaborator reports the
// placeholder visible. Each placeholder registers interest once; the
// visibility event fires the callback a single time and drops the
// subscription. Callback subscription, not polling.
type Observer struct {
	mu   sync.Mutex
	subs map[string]func(ctx context.Context)
}

func NewObserver() *Observer {
	return &Observer{
		subs: make(map[string]func(ctx context.Context)),
	}
}

// Register subscribes a placeholder under key. A second registration for the
// same key replaces the pending callback.
func (o *Observer) Register(key string, fire func(ctx context.Context)) {
	o.mu.Lock()
	o.subs[key] = fire
	o.mu.Unlock()
}

// MarkVisible fires the pending callback for key, once. Returns false when
// nothing is registered, which includes keys already fired.
func (o *Observer) MarkVisible(ctx context.Context, key string) bool {
	o.mu.Lock()
	fire, ok := o.subs[key]
	if ok {
		delete(o.subs, key)
	}
	o.mu.Unlock()

	if !ok {
		return false
	}
	fire(ctx)
	return true
}

// Pending returns the number of placeholders still waiting for visibility.
func (o *Observer) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
