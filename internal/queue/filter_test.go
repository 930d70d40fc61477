package queue

import (
	"reflect"
	"testing"
	"time"

	"github.com/tripline/guidemod/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 10, 0, 0, 0, time.UTC)
}

func filterItems() []models.ModerationItem {
	return []models.ModerationItem{
		{ID: "a", Guide: models.Guide{Title: "Paris trip", Author: models.Author{Name: "Marie"}, PublicationTime: day(3)}},
		{ID: "b", Guide: models.Guide{Title: "Rome food", Author: models.Author{Name: "Luca"}, PublicationTime: day(1),
			Places: []models.Place{{Name: "Trattoria"}, {Name: "Mercato"}}}, Status: models.StatusApproved},
		{ID: "c", Guide: models.Guide{Title: "Tokyo nights", Author: models.Author{Name: "Kei"}, PublicationTime: day(5),
			Places: []models.Place{{Name: "Golden Gai"}}}, Status: models.StatusDeclined},
		{ID: "d", Guide: models.Guide{Title: "Berlin walks", Author: models.Author{Name: "Jonas"}}, Status: models.StatusApproving},
	}
}

func viewIDs(view []models.ModerationItem) []string {
	ids := make([]string, len(view))
	for i, item := range view {
		ids[i] = item.ID
	}
	return ids
}

func TestDeriveStatusFilter(t *testing.T) {
	items := filterItems()

	tests := []struct {
		name   string
		filter models.StatusFilter
		want   []string
	}{
		{"all", models.FilterAll, []string{"a", "b", "c", "d"}},
		{"pending includes transitional", models.FilterPending, []string{"a", "d"}},
		{"approved only", models.FilterApproved, []string{"b"}},
		{"declined only", models.FilterDeclined, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewIDs(Derive(items, models.Criteria{Status: tt.filter}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Derive(%s) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestDeriveSearch(t *testing.T) {
	items := filterItems()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match case folded", "rome", []string{"b"}},
		{"author match", "marie", []string{"a"}},
		{"empty matches all", "", []string{"a", "b", "c", "d"}},
		{"whitespace matches all", "   ", []string{"a", "b", "c", "d"}},
		{"no match", "zanzibar", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewIDs(Derive(items, models.Criteria{Search: tt.search}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Derive(search=%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestDeriveSort(t *testing.T) {
	items := filterItems()

	tests := []struct {
		name string
		sort models.SortKey
		want []string
	}{
		// d has no timestamp and sorts as zero time
		{"date desc", models.SortDateDesc, []string{"c", "a", "b", "d"}},
		{"date asc", models.SortDateAsc, []string{"d", "b", "a", "c"}},
		{"places desc", models.SortPlacesDesc, []string{"b", "c", "a", "d"}},
		{"none keeps input order", models.SortNone, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewIDs(Derive(items, models.Criteria{Sort: tt.sort}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Derive(sort=%s) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestDeriveDateDescOrdering(t *testing.T) {
	view := Derive(filterItems(), models.Criteria{Sort: models.SortDateDesc})
	for i := 1; i < len(view); i++ {
		if view[i-1].Guide.PublicationTime.Before(view[i].Guide.PublicationTime) {
			t.Errorf("date-desc violated at %d: %v before %v",
				i, view[i-1].Guide.PublicationTime, view[i].Guide.PublicationTime)
		}
	}
}

func TestDeriveStableTies(t *testing.T) {
	same := day(1)
	items := []models.ModerationItem{
		{ID: "x", Guide: models.Guide{PublicationTime: same}},
		{ID: "y", Guide: models.Guide{PublicationTime: same}},
		{ID: "z", Guide: models.Guide{PublicationTime: same}},
	}
	got := viewIDs(Derive(items, models.Criteria{Sort: models.SortDateDesc}))
	if !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("equal timestamps must keep input order, got %v", got)
	}
}

func TestDeriveIdempotent(t *testing.T) {
	items := filterItems()
	criteria := models.Criteria{Status: models.FilterPending, Search: "r", Sort: models.SortDateDesc}

	first := Derive(items, criteria)
	second := Derive(items, criteria)
	if !reflect.DeepEqual(viewIDs(first), viewIDs(second)) {
		t.Errorf("derivation not idempotent: %v vs %v", viewIDs(first), viewIDs(second))
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	items := filterItems()
	before := viewIDs(items)
	Derive(items, models.Criteria{Sort: models.SortDateAsc})
	if !reflect.DeepEqual(viewIDs(items), before) {
		t.Errorf("input snapshot reordered: %v", viewIDs(items))
	}
}

func TestDeriveExcludesApprovedAfterDecision(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(filterItems())
	if err := store.SetStatus("a", models.StatusApproved, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	got := viewIDs(Derive(store.Snapshot(), models.Criteria{Status: models.FilterPending}))
	if !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("approved item still in pending view: %v", got)
	}
}
