package queue

import (
	"sort"
	"strings"

	"github.com/tripline/guidemod/internal/models"
)

// Derive computes the operator-facing view from a snapshot of the canonical
// collection: status filter, then search filter, then sort. It is pure and
// deterministic; identical inputs always produce an identically ordered
// output. Ties keep the snapshot order.
func Derive(items []models.ModerationItem, c models.Criteria) []models.ModerationItem {
	view := make([]models.ModerationItem, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(c.Search))
	for _, item := range items {
		if !matchesStatus(item, c.Status) {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		view = append(view, item)
	}

	switch c.Sort {
	case models.SortDateDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Guide.PublicationTime.After(view[j].Guide.PublicationTime)
		})
	case models.SortDateAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Guide.PublicationTime.Before(view[j].Guide.PublicationTime)
		})
	case models.SortPlacesDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].PlacesCount() > view[j].PlacesCount()
		})
	}

	return view
}

func matchesStatus(item models.ModerationItem, f models.StatusFilter) bool {
	switch f {
	case models.FilterPending:
		return item.Status.IsPending()
	case models.FilterApproved:
		return item.Status == models.StatusApproved
	case models.FilterDeclined:
		return item.Status == models.StatusDeclined
	default:
		return true
	}
}

func matchesSearch(item models.ModerationItem, lowered string) bool {
	return strings.Contains(strings.ToLower(item.Guide.Title), lowered) ||
		strings.Contains(strings.ToLower(item.Guide.Author.Name), lowered)
}
