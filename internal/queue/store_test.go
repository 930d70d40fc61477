package queue

import (
	"errors"
	"testing"

	"github.com/tripline/guidemod/internal/models"
)

func testItems() []models.ModerationItem {
	return []models.ModerationItem{
		{ID: "a", Guide: models.Guide{Title: "Paris trip", Author: models.Author{Name: "Marie"}}},
		{ID: "b", Guide: models.Guide{Title: "Rome food", Author: models.Author{Name: "Luca"}}, Status: models.StatusApproved},
		{ID: "c", Guide: models.Guide{Title: "Tokyo nights", Author: models.Author{Name: "Kei"}}, Status: models.StatusDeclined},
	}
}

func TestStoreReplaceAllAndGet(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(testItems())

	if store.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", store.Len())
	}

	item, err := store.Get("b")
	if err != nil {
		t.Fatalf("Get(b): %v", err)
	}
	if item.Guide.Title != "Rome food" {
		t.Errorf("expected Rome food, got %q", item.Guide.Title)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreReplaceAllDiscardsPrevious(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(testItems())
	store.ReplaceAll([]models.ModerationItem{{ID: "x"}})

	if store.Len() != 1 {
		t.Fatalf("expected 1 item after replace, got %d", store.Len())
	}
	if _, err := store.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old item should be gone, got %v", err)
	}
}

func TestStoreSetStatus(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(testItems())

	// Grab the pointer first: the mutation must land on the same record
	before, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get(a): %v", err)
	}

	if err := store.SetStatus("a", models.StatusApproved, "nice guide"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if before.Status != models.StatusApproved {
		t.Errorf("mutation did not preserve identity: status %q on original pointer", before.Status)
	}
	if before.ModeratorComment != "nice guide" {
		t.Errorf("expected comment on original pointer, got %q", before.ModeratorComment)
	}

	// Other items untouched
	other, _ := store.Get("b")
	if other.ModeratorComment != "" {
		t.Errorf("unrelated item mutated: %q", other.ModeratorComment)
	}
}

func TestStoreSetStatusNotFound(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(testItems())

	if err := store.SetStatus("missing", models.StatusApproved, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSnapshotIsDetached(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(testItems())

	snap := store.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 items in snapshot, got %d", len(snap))
	}
	if snap[0].ID != "a" || snap[2].ID != "c" {
		t.Errorf("snapshot lost canonical order: %v, %v", snap[0].ID, snap[2].ID)
	}

	snap[0].Status = models.StatusDeclined
	live, _ := store.Get("a")
	if live.Status != models.StatusPending {
		t.Errorf("mutating a snapshot leaked into the store: %q", live.Status)
	}
}

func TestStoreReplaceAllKeepsFirstDuplicate(t *testing.T) {
	store := NewStore()
	store.ReplaceAll([]models.ModerationItem{
		{ID: "a", Guide: models.Guide{Title: "first"}},
		{ID: "a", Guide: models.Guide{Title: "second"}},
	})

	if store.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", store.Len())
	}
	item, _ := store.Get("a")
	if item.Guide.Title != "first" {
		t.Errorf("expected first occurrence kept, got %q", item.Guide.Title)
	}
}
