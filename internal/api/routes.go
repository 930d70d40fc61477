package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripline/guidemod/internal/config"
	"github.com/tripline/guidemod/internal/middleware"
)

// SetupRoutes configures all the routes for the moderation console
func SetupRoutes(app *fiber.App, h *Handlers, cfg *config.Config) {
	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", h.HealthCheck)

	// Operator endpoints (API-key guarded)
	secured := api.Group("", middleware.AdminOnly(cfg.AdminAPIKey))

	queue := secured.Group("/queue")
	{
		queue.Get("", h.GetQueue)             // Filtered, sorted queue view
		queue.Delete("/detail", h.CloseDetail) // Close the detail context
		queue.Get("/:id", h.GetQueueItem)      // Open an item in detail
		queue.Post("/:id/approve", h.Approve)  // Approve a guide
		queue.Post("/:id/decline", h.Decline)  // Decline a guide
	}

	secured.Get("/stats", h.GetStats)
	secured.Post("/refresh", h.Refresh)
	secured.Get("/notifications", h.GetNotifications)
	secured.Post("/images/visible", h.ImageVisible)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
