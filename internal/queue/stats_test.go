package queue

import (
	"testing"
	"time"

	"github.com/tripline/guidemod/internal/models"
)

func TestComputeStatsScenario(t *testing.T) {
	now := time.Date(2025, 6, 5, 15, 30, 0, 0, time.Local)
	items := []models.ModerationItem{
		{ID: "a"},
		{ID: "b", Status: models.StatusApproved},
		{ID: "c", Status: models.StatusDeclined,
			Guide: models.Guide{PublicationTime: time.Date(2025, 6, 5, 8, 0, 0, 0, time.Local)}},
	}

	stats := ComputeStats(items, now)
	want := models.Stats{Pending: 1, Approved: 1, Declined: 1, PublishedToday: 1}
	if stats != want {
		t.Errorf("ComputeStats = %+v, want %+v", stats, want)
	}
}

func TestComputeStatsCountsSumToTotal(t *testing.T) {
	now := time.Now()
	items := []models.ModerationItem{
		{ID: "a"},
		{ID: "b", Status: models.StatusApproving},
		{ID: "c", Status: models.StatusApproved},
		{ID: "d", Status: models.StatusDeclined},
		{ID: "e", Status: models.StatusDeclined},
	}

	stats := ComputeStats(items, now)
	if stats.Total() != len(items) {
		t.Errorf("pending+approved+declined = %d, want %d", stats.Total(), len(items))
	}
	if stats.Pending != 2 {
		t.Errorf("transitional status must count as pending, got %d", stats.Pending)
	}
}

func TestComputeStatsPublishedToday(t *testing.T) {
	now := time.Date(2025, 6, 5, 0, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		pub  time.Time
		want int
	}{
		{"same calendar day", time.Date(2025, 6, 5, 23, 0, 0, 0, time.Local), 1},
		{"yesterday", time.Date(2025, 6, 4, 23, 59, 0, 0, time.Local), 0},
		{"missing timestamp excluded", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []models.ModerationItem{{ID: "a", Guide: models.Guide{PublicationTime: tt.pub}}}
			stats := ComputeStats(items, now)
			if stats.PublishedToday != tt.want {
				t.Errorf("PublishedToday = %d, want %d", stats.PublishedToday, tt.want)
			}
		})
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	if stats != (models.Stats{}) {
		t.Errorf("expected zero stats for empty collection, got %+v", stats)
	}
}
