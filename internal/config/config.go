// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// Database
	DatabaseURL string

	// OpenAI
	OpenAIAPIKey string

	// Email notifications (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Completion webhook (optional, fired alongside email)
	NotifyWebhookURL string

	// CORS
	CORSOrigins []string

	// Crawler
	CrawlMaxPages  int           // Max pages fetched per clone job (root included)
	CrawlDelay     time.Duration // Delay between subpage fetches
	FetchTimeout   time.Duration // Per-request timeout
	LinkCheckLimit int           // Max HEAD checks for link health stats

	// Cleanup
	CleanupEnabled  bool
	CleanupMaxAge   time.Duration // Max age of finished jobs to keep
	CleanupInterval time.Duration

	// Worker
	WorkerPollInterval time.Duration
	WorkerConcurrency  int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL: getEnv("DATABASE_URL", "file:redesigner.db?_journal=WAL&_timeout=5000"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", ""),

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),

		CrawlMaxPages:  getEnvInt("CRAWL_MAX_PAGES", 5),
		CrawlDelay:     getEnvDuration("CRAWL_DELAY", 500*time.Millisecond),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		LinkCheckLimit: getEnvInt("LINK_CHECK_LIMIT", 10),

		CleanupEnabled:  getEnvBool("CLEANUP_ENABLED", true),
		CleanupMaxAge:   getEnvDuration("CLEANUP_MAX_AGE", 30*24*time.Hour),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 24*time.Hour),

		WorkerPollInterval: getEnvDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		WorkerConcurrency:  getEnvInt("WORKER_CONCURRENCY", 3),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.CrawlMaxPages < 1 {
		cfg.CrawlMaxPages = 1
	}

	// EmailFrom falls back to the SMTP username, matching common provider setups
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUsername
	}

	return cfg, nil
}

// EmailEnabled returns true if SMTP notifications are configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFrom != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "true" || lower == "1" || lower == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
