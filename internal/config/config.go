package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the moderation console
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Moderation backend
	BackendBaseURL string        `json:"backend_base_url"`
	QueuePath      string        `json:"queue_path"`
	ApprovePath    string        `json:"approve_path"`
	DeclinePath    string        `json:"decline_path"`
	BackendTimeout time.Duration `json:"backend_timeout"`

	// Redis configuration (optional; in-memory fallback when empty)
	RedisURL    string `json:"redis_url"`
	RedisPrefix string `json:"redis_prefix"`

	// CloudFlare R2 Configuration (optional image swap target)
	R2Endpoint    string `json:"r2_endpoint"`
	R2AccessKey   string `json:"r2_access_key"`
	R2SecretKey   string `json:"r2_secret_key"`
	R2Bucket      string `json:"r2_bucket"`
	R2PublicBase  string `json:"r2_public_base"`
	ImageCacheTTL time.Duration `json:"image_cache_ttl"`

	// Notifications
	NotifyTTL time.Duration `json:"notify_ttl"`

	// Logging
	LogLevel string `json:"log_level"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Moderation backend
		BackendBaseURL: getEnv("BACKEND_BASE_URL", ""),
		QueuePath:      getEnv("BACKEND_QUEUE_PATH", "/api/secure/admin/moderation/guides"),
		ApprovePath:    getEnv("BACKEND_APPROVE_PATH", "/api/secure/admin/moderation/guides/approve"),
		DeclinePath:    getEnv("BACKEND_DECLINE_PATH", "/api/secure/admin/moderation/guides/decline"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "guidemod:img:"),

		// CloudFlare R2 Configuration
		R2Endpoint:    getEnv("R2_ENDPOINT", ""),
		R2AccessKey:   getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey:   getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:      getEnv("R2_BUCKET", "guide-photos"),
		R2PublicBase:  getEnv("R2_PUBLIC_BASE_URL", ""),
		ImageCacheTTL: getEnvAsDuration("IMAGE_CACHE_TTL", 720*time.Hour), // 30 days

		// Notifications
		NotifyTTL: getEnvAsDuration("NOTIFY_TTL", 3*time.Second),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
