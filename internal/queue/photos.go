package queue

import "github.com/tripline/guidemod/internal/models"

// Layout size classes for guide card images.
const (
	LayoutSingle = "single"
	LayoutDouble = "double"
)

// PhotosOf flattens the guide's photo references across places, place order
// preserved. Extraction is unbounded; truncating to the first few is the
// renderer's concern.
func PhotosOf(item *models.ModerationItem) []string {
	var photos []string
	for _, place := range item.Guide.Places {
		photos = append(photos, place.PhotoURIs...)
	}
	return photos
}

// LayoutClass returns the size hint for the photo at index within a card
// showing total photos: a lone photo spans the card, the first of two takes
// the wide slot, everything else uses the default tile.
func LayoutClass(total, index int) string {
	if total == 1 {
		return LayoutSingle
	}
	if total == 2 && index == 0 {
		return LayoutDouble
	}
	return ""
}
