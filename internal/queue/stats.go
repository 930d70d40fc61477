package queue

import (
	"time"

	"github.com/tripline/guidemod/internal/models"
)

// ComputeStats aggregates over the full canonical collection, not the
// filtered view. "Published today" compares calendar dates in local time;
// items without a publication time are excluded from that counter but still
// counted by status, so Pending+Approved+Declined always equals the total.
func ComputeStats(items []models.ModerationItem, now time.Time) models.Stats {
	var stats models.Stats
	todayY, todayM, todayD := now.Date()

	for _, item := range items {
		switch {
		case item.Status == models.StatusApproved:
			stats.Approved++
		case item.Status == models.StatusDeclined:
			stats.Declined++
		default:
			stats.Pending++
		}

		pub := item.Guide.PublicationTime
		if pub.IsZero() {
			continue
		}
		y, m, d := pub.In(now.Location()).Date()
		if y == todayY && m == todayM && d == todayD {
			stats.PublishedToday++
		}
	}

	return stats
}
