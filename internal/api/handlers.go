package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tripline/guidemod/internal/config"
	"github.com/tripline/guidemod/internal/images"
	"github.com/tripline/guidemod/internal/logger"
	"github.com/tripline/guidemod/internal/middleware"
	"github.com/tripline/guidemod/internal/models"
	"github.com/tripline/guidemod/internal/moderation"
	"github.com/tripline/guidemod/internal/notify"
	"github.com/tripline/guidemod/internal/queue"
)

type Handlers struct {
	config      *config.Config
	store       *queue.Store
	selection   *queue.Selection
	coordinator *moderation.Coordinator
	notifier    *notify.Center
	observer    *images.Observer
	loader      *images.Loader
	validator   *middleware.Validator

	// changedAt tracks the last confirmed store mutation (unix nanos),
	// echoed as asOf so the console can tell stale polls apart.
	changedAt atomic.Int64
	// resolved maps a photo URI to its swapped URL once the deferred load ran.
	resolved sync.Map
}

func NewHandlers(cfg *config.Config, store *queue.Store, selection *queue.Selection, coordinator *moderation.Coordinator, notifier *notify.Center, observer *images.Observer, loader *images.Loader) *Handlers {
	h := &Handlers{
		config:      cfg,
		store:       store,
		selection:   selection,
		coordinator: coordinator,
		notifier:    notifier,
		observer:    observer,
		loader:      loader,
		validator:   middleware.NewValidator(),
	}
	h.changedAt.Store(time.Now().UnixNano())
	return h
}

// MarkChanged records a confirmed mutation of the canonical collection.
// Wired as the coordinator's onChange signal.
func (h *Handlers) MarkChanged() {
	h.changedAt.Store(time.Now().UnixNano())
}

func (h *Handlers) asOf() time.Time {
	return time.Unix(0, h.changedAt.Load())
}

// photoView is one photo reference with its card layout hint.
type photoView struct {
	URI    string `json:"uri"`
	Layout string `json:"layout,omitempty"`
}

// cardView is the queue view model the renderer consumes.
type cardView struct {
	models.ModerationItem
	PlacesCount int         `json:"placesCount"`
	Photos      []photoView `json:"photos"`
}

func (h *Handlers) cardOf(item models.ModerationItem) cardView {
	photos := queue.PhotosOf(&item)
	views := make([]photoView, len(photos))
	for i, uri := range photos {
		views[i] = photoView{URI: uri, Layout: queue.LayoutClass(len(photos), i)}
		h.registerPhoto(uri)
	}
	return cardView{
		ModerationItem: item,
		PlacesCount:    item.PlacesCount(),
		Photos:         views,
	}
}

// registerPhoto subscribes the photo placeholder for deferred loading. The
// fetch runs only when the renderer reports the placeholder visible.
func (h *Handlers) registerPhoto(uri string) {
	if _, done := h.resolved.Load(uri); done {
		return
	}
	h.observer.Register(uri, func(ctx context.Context) {
		swapped, err := h.loader.Load(ctx, uri)
		if err != nil {
			logger.Get().Error().Err(err).Str("uri", uri).Msg("Deferred photo load failed")
			return
		}
		h.resolved.Store(uri, swapped)
	})
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetQueue handles GET /api/v1/queue
func (h *Handlers) GetQueue(c *fiber.Ctx) error {
	criteria := models.Criteria{
		Status: models.StatusFilter(c.Query("status")),
		Search: c.Query("search"),
		Sort:   models.SortKey(c.Query("sort")),
	}

	view := queue.Derive(h.store.Snapshot(), criteria)
	cards := make([]cardView, len(view))
	for i, item := range view {
		cards[i] = h.cardOf(item)
	}

	return c.JSON(fiber.Map{
		"criteria": criteria,
		"total":    h.store.Len(),
		"count":    len(cards),
		"items":    cards,
		"asOf":     h.asOf(),
	})
}

// GetQueueItem handles GET /api/v1/queue/:id — opens the detail context.
func (h *Handlers) GetQueueItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Moderation id is required",
		})
	}

	item, err := h.selection.Open(id)
	if err != nil {
		logger.Get().Warn().Str("id", id).Msg("Detail open for unknown item")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Moderation item not found",
		})
	}

	return c.JSON(h.cardOf(*item))
}

// CloseDetail handles DELETE /api/v1/queue/detail
func (h *Handlers) CloseDetail(c *fiber.Ctx) error {
	h.selection.Close()
	return c.SendStatus(fiber.StatusNoContent)
}

// actionRequest is the approve/decline body from the console.
type actionRequest struct {
	Comment    string `json:"comment" validate:"max=2000"`
	FromDetail bool   `json:"fromDetail"`
}

// Approve handles POST /api/v1/queue/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.act(c, models.DecisionApprove)
}

// Decline handles POST /api/v1/queue/:id/decline
func (h *Handlers) Decline(c *fiber.Ctx) error {
	return h.act(c, models.DecisionDecline)
}

func (h *Handlers) act(c *fiber.Ctx, decision models.Decision) error {
	id := c.Params("id")

	// A quick action from the queue list may arrive without a body
	var req actionRequest
	if len(c.Body()) > 0 {
		if ok, err := h.validator.ParseBody(c, &req); !ok {
			return err
		}
	}

	err := h.coordinator.Act(c.Context(), id, decision, req.Comment, req.FromDetail)
	switch {
	case err == nil:
		item, getErr := h.store.Get(id)
		if getErr != nil {
			return getErr
		}
		return c.JSON(fiber.Map{
			"status": item.Status,
			"id":     id,
		})
	case errors.Is(err, queue.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Moderation item not found",
		})
	case errors.Is(err, moderation.ErrCommentRequired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "A decline from the detail view requires a comment",
		})
	case errors.Is(err, moderation.ErrActionInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An action for this item is already in progress",
		})
	default:
		logger.Get().Error().Err(err).Str("id", id).Msg("Moderation action failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Moderation action failed",
		})
	}
}

// GetStats handles GET /api/v1/stats
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	stats := queue.ComputeStats(h.store.Snapshot(), time.Now())
	return c.JSON(fiber.Map{
		"stats": stats,
		"asOf":  h.asOf(),
	})
}

// Refresh handles POST /api/v1/refresh — re-fetch the canonical collection.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	if err := h.coordinator.Refresh(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to load moderation queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "refreshed",
		"total":  h.store.Len(),
	})
}

// GetNotifications handles GET /api/v1/notifications
func (h *Handlers) GetNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"notifications": h.notifier.Active(),
	})
}

// imageVisibleRequest reports a photo placeholder entering the viewport.
type imageVisibleRequest struct {
	URI string `json:"uri" validate:"required,url"`
}

// ImageVisible handles POST /api/v1/images/visible — fires the one-time
// deferred load for the photo and returns the URL to swap in.
func (h *Handlers) ImageVisible(c *fiber.Ctx) error {
	var req imageVisibleRequest
	if ok, err := h.validator.ParseBody(c, &req); !ok {
		return err
	}

	fired := h.observer.MarkVisible(c.Context(), req.URI)

	swapped, ok := h.resolved.Load(req.URI)
	if !ok {
		if !fired {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Photo is not registered for loading",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Photo could not be loaded",
		})
	}

	return c.JSON(fiber.Map{
		"uri":     req.URI,
		"swapped": swapped,
	})
}
