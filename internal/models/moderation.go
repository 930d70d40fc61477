package models

import "time"

// Status is the moderation state of a queue item as reported by the backend.
// An empty status means the item has not been moderated yet.
type Status string

const (
	StatusPending  Status = ""
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
	// StatusApproving is a transitional state the backend may report while a
	// decision is being processed. It counts as pending everywhere.
	StatusApproving Status = "APPROVING"
)

// IsPending reports whether the status still counts as awaiting moderation.
func (s Status) IsPending() bool {
	return s == StatusPending || s == StatusApproving
}

// IsFinal reports whether the status is a terminal moderation decision.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// Decision is an operator verdict submitted for one item.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDecline Decision = "decline"
)

// Author is the guide author as embedded in the backend payload.
type Author struct {
	Name      string `json:"name"`
	AvatarURI string `json:"avatarUri,omitempty"`
}

// Place is a single stop inside a guide, with its photo references in
// display order.
type Place struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PhotoURIs   []string `json:"photoUris,omitempty"`
}

// Guide is the user-submitted content under review.
type Guide struct {
	Locality        string    `json:"locality"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	PublicationTime time.Time `json:"publicationTime,omitempty"`
	Author          Author    `json:"author"`
	Places          []Place   `json:"places,omitempty"`
}

// ModerationItem is one entry of the moderation queue. Identity is immutable;
// only Status and ModeratorComment change, and only after the backend has
// confirmed a decision.
type ModerationItem struct {
	ID               string `json:"id"`
	Guide            Guide  `json:"guide"`
	Status           Status `json:"status,omitempty"`
	ModeratorComment string `json:"moderatorComment,omitempty"`
}

// PlacesCount returns the number of places in the guide, zero when absent.
func (m *ModerationItem) PlacesCount() int {
	return len(m.Guide.Places)
}

// StatusFilter narrows the queue view by moderation state.
type StatusFilter string

const (
	FilterAll      StatusFilter = ""
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterDeclined StatusFilter = "declined"
)

// SortKey orders the queue view.
type SortKey string

const (
	SortNone       SortKey = ""
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortPlacesDesc SortKey = "places-desc"
)

// Criteria is the operator-supplied filter and ordering for the queue view.
type Criteria struct {
	Status StatusFilter `json:"status"`
	Search string       `json:"search"`
	Sort   SortKey      `json:"sort"`
}

// Stats is the aggregate over the full canonical collection, never over the
// filtered view.
type Stats struct {
	Pending        int `json:"pending"`
	Approved       int `json:"approved"`
	Declined       int `json:"declined"`
	PublishedToday int `json:"publishedToday"`
}

// Total returns the canonical item count covered by the status counters.
func (s Stats) Total() int {
	return s.Pending + s.Approved + s.Declined
}
