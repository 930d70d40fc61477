package queue

import (
	"errors"
	"sync"

	"github.com/tripline/guidemod/internal/models"
)

// ErrNotFound is returned when an item id is absent from the canonical
// collection.
var ErrNotFound = errors.New("moderation item not found")

// Store holds the canonical moderation queue as last fetched from the
// backend. It is the single source of mutable truth: items enter wholesale
// via ReplaceAll, change status only via SetStatus, and leave only at the
// next ReplaceAll. All derivations (view, stats) work on Snapshot copies.
type Store struct {
	mu    sync.RWMutex
	items map[string]*models.ModerationItem
	order []string
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]*models.ModerationItem),
	}
}

// ReplaceAll atomically swaps the canonical collection. Input order is
// preserved; a duplicated id keeps the first occurrence.
func (s *Store) ReplaceAll(items []models.ModerationItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*models.ModerationItem, len(items))
	s.order = s.order[:0]
	for i := range items {
		item := items[i]
		if _, exists := s.items[item.ID]; exists {
			continue
		}
		s.items[item.ID] = &item
		s.order = append(s.order, item.ID)
	}
}

// Get returns the live item for id or ErrNotFound. The pointer observes
// later SetStatus mutations.
func (s *Store) Get(id string) (*models.ModerationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

// SetStatus mutates status and moderator comment on the existing record,
// preserving identity. Callers re-derive the view and stats afterward; the
// store does not notify.
func (s *Store) SetStatus(id string, status models.Status, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	item.Status = status
	item.ModeratorComment = comment
	return nil
}

// Snapshot returns the collection as value copies in canonical order, safe
// to filter and sort without touching live state.
func (s *Store) Snapshot() []models.ModerationItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ModerationItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Len returns the canonical item count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
