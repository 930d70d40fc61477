package images

import (
	"context"
	"testing"
)

func TestObserverFiresOnce(t *testing.T) {
	o := NewObserver()
	fired := 0
	o.Register("photo-1", func(ctx context.Context) { fired++ })

	if !o.MarkVisible(context.Background(), "photo-1") {
		t.Fatal("expected callback to fire")
	}
	if o.MarkVisible(context.Background(), "photo-1") {
		t.Error("second visibility event must not fire again")
	}
	if fired != 1 {
		t.Errorf("expected exactly one fire, got %d", fired)
	}
	if o.Pending() != 0 {
		t.Errorf("expected no pending subscriptions, got %d", o.Pending())
	}
}

func TestObserverUnknownKey(t *testing.T) {
	o := NewObserver()
	if o.MarkVisible(context.Background(), "never-registered") {
		t.Error("unknown key must not fire")
	}
}

func TestObserverReRegisterReplaces(t *testing.T) {
	o := NewObserver()
	var got string
	o.Register("photo-1", func(ctx context.Context) { got = "first" })
	o.Register("photo-1", func(ctx context.Context) { got = "second" })

	o.MarkVisible(context.Background(), "photo-1")
	if got != "second" {
		t.Errorf("re-registration must replace the callback, fired %q", got)
	}
	if o.Pending() != 0 {
		t.Errorf("expected no pending subscriptions, got %d", o.Pending())
	}
}

func TestObserverIndependentKeys(t *testing.T) {
	o := NewObserver()
	var a, b bool
	o.Register("a", func(ctx context.Context) { a = true })
	o.Register("b", func(ctx context.Context) { b = true })

	o.MarkVisible(context.Background(), "a")
	if !a || b {
		t.Errorf("only the visible key may fire: a=%v b=%v", a, b)
	}
	if o.Pending() != 1 {
		t.Errorf("expected one pending subscription, got %d", o.Pending())
	}
}
