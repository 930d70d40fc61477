package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tripline/guidemod/internal/api"
	"github.com/tripline/guidemod/internal/backend"
	"github.com/tripline/guidemod/internal/cache"
	"github.com/tripline/guidemod/internal/config"
	"github.com/tripline/guidemod/internal/images"
	"github.com/tripline/guidemod/internal/logger"
	"github.com/tripline/guidemod/internal/middleware"
	"github.com/tripline/guidemod/internal/moderation"
	"github.com/tripline/guidemod/internal/notify"
	"github.com/tripline/guidemod/internal/queue"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting moderation console...")

	// Image-marker cache: Redis when configured, in-memory otherwise
	var imageCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis cache")
		}
		imageCache = redisCache
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory image cache")
		imageCache = cache.NewMockCache(cfg.RedisPrefix)
	}
	defer func() {
		if err := imageCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing image cache")
		}
	}()

	// Deferred image loading pipeline
	loader, err := images.NewLoader(imageCache, images.LoaderOptions{
		R2Endpoint:    cfg.R2Endpoint,
		R2AccessKey:   cfg.R2AccessKey,
		R2SecretKey:   cfg.R2SecretKey,
		R2Bucket:      cfg.R2Bucket,
		PublicBaseURL: cfg.R2PublicBase,
		Timeout:       cfg.BackendTimeout,
		MarkerTTL:     cfg.ImageCacheTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize image loader")
	}
	observer := images.NewObserver()

	// Queue state and the moderation coordinator
	store := queue.NewStore()
	selection := queue.NewSelection(store)
	notifier := notify.NewCenter(cfg.NotifyTTL)
	client := backend.NewClient(backend.Options{
		BaseURL:     cfg.BackendBaseURL,
		QueuePath:   cfg.QueuePath,
		ApprovePath: cfg.ApprovePath,
		DeclinePath: cfg.DeclinePath,
		Timeout:     cfg.BackendTimeout,
	})

	var handlers *api.Handlers
	coordinator := moderation.NewCoordinator(store, selection, client, notifier, func() {
		if handlers != nil {
			handlers.MarkChanged()
		}
	})
	handlers = api.NewHandlers(cfg, store, selection, coordinator, notifier, observer, loader)

	// Initial queue load; the console starts empty when the backend is down
	// and the operator refreshes manually
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout)
		defer cancel()
		if err := coordinator.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Initial queue refresh failed")
		}
	}()

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// Setup API routes
	api.SetupRoutes(app, handlers, cfg)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
