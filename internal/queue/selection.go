package queue

import (
	"sync"

	"github.com/tripline/guidemod/internal/models"
)

// Selection tracks the single item under detailed inspection. It holds the
// store's live pointer, so a confirmed status mutation shows through without
// re-opening. After the collection is replaced the selection must be
// revalidated; an id that vanished clears it.
type Selection struct {
	mu      sync.Mutex
	store   *Store
	current *models.ModerationItem
}

func NewSelection(store *Store) *Selection {
	return &Selection{store: store}
}

// Open looks up id in the canonical collection and selects it. Returns
// ErrNotFound when the id is absent; the previous selection is kept in that
// case.
func (s *Selection) Open(id string) (*models.ModerationItem, error) {
	item, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = item
	s.mu.Unlock()
	return item, nil
}

// Close clears the selection unconditionally.
func (s *Selection) Close() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the selected item, or nil when nothing is open.
func (s *Selection) Current() *models.ModerationItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Revalidate re-resolves the selection against the current collection.
// Called after ReplaceAll: the old pointer belongs to the discarded
// collection, so the selection either rebinds to the fresh record or clears.
func (s *Selection) Revalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	item, err := s.store.Get(s.current.ID)
	if err != nil {
		s.current = nil
		return
	}
	s.current = item
}
