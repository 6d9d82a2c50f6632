// Package main is the entry point for the redesigner-api server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/database"
	"github.com/lab007/redesigner-api/internal/http/handlers"
	"github.com/lab007/redesigner-api/internal/http/mw"
	"github.com/lab007/redesigner-api/internal/logging"
	"github.com/lab007/redesigner-api/internal/repository"
	"github.com/lab007/redesigner-api/internal/service"
	"github.com/lab007/redesigner-api/internal/version"
	"github.com/lab007/redesigner-api/internal/worker"
)

func main() {
	// Initialize logger with TTY detection, source paths, and format control
	logger := logging.SetDefault()

	// Log version info first thing
	v := version.Get()
	logger.Info("starting redesigner-api",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Run migrations (with logging for each migration applied)
	if err := database.MigrateWithLogger(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Log current schema version
	schemaVersion, err := database.GetLatestSchemaVersion(db)
	if err != nil {
		logger.Warn("failed to get schema version", "error", err)
	} else if schemaVersion != "" {
		migrationCount, _ := database.GetMigrationCount(db)
		logger.Info("database schema ready", "schema_version", schemaVersion, "migrations_applied", migrationCount)
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Clean up stale running jobs from previous server runs
	// Jobs running for more than 1 hour are considered stale on startup
	staleCount, err := repos.Job.MarkStaleRunningJobsFailed(context.Background(), 1*time.Hour)
	if err != nil {
		logger.Warn("failed to clean up stale jobs", "error", err)
	} else if staleCount > 0 {
		logger.Info("cleaned up stale running jobs", "count", staleCount)
	}

	// Initialize services
	services := service.NewServices(cfg, repos, logger)
	if cfg.EmailEnabled() {
		logger.Info("email notifications enabled", "smtp_host", cfg.SMTPHost, "from", cfg.EmailFrom)
	}
	if cfg.NotifyWebhookURL != "" {
		logger.Info("completion webhook enabled", "url", cfg.NotifyWebhookURL)
	}

	// Start background worker for job processing
	jobWorker := worker.New(
		repos.Job,
		services.Redesign,
		worker.Config{
			PollInterval: cfg.WorkerPollInterval,
			Concurrency:  cfg.WorkerConcurrency,
		},
		logger,
	)
	ctx, cancel := context.WithCancel(context.Background())
	jobWorker.Start(ctx)

	// Start cleanup service if enabled
	if cfg.CleanupEnabled {
		go services.Cleanup.RunScheduledCleanup(ctx, cfg.CleanupMaxAge, cfg.CleanupInterval)
		logger.Info("cleanup service started",
			"max_age", cfg.CleanupMaxAge.String(),
			"interval", cfg.CleanupInterval.String(),
		)
	}

	// Create router
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Request timeout middleware with different timeouts per endpoint type
	router.Use(mw.Timeout(mw.TimeoutConfig{
		Default:  30 * time.Second,
		Extended: 120 * time.Second,
		// Synchronous analysis fetches the live site before responding
		ExtendedPatterns: []string{"/analyze"},
	}))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Request size limit (1MB) - prevent large payload attacks
	router.Use(middleware.RequestSize(1 * 1024 * 1024))

	// Global rate limit by IP
	router.Use(httprate.LimitByIP(100, time.Minute))

	// Global concurrency throttle - prevent system overload
	router.Use(middleware.Throttle(100))

	// Huma API config with OpenAPI docs
	humaConfig := huma.DefaultConfig("Redesigner API", "1.0.0")
	humaConfig.Info.Description = "AI-powered website redesign API that crawls a site, extracts its content, and generates a restyled HTML demo or a design mockup image."
	humaConfig.Servers = []*huma.Server{
		{URL: cfg.BaseURL, Description: "API Server"},
	}
	api := humachi.New(router, humaConfig)

	// Health check
	huma.Get(api, "/api/v1/health", handlers.HealthCheck)

	// Job routes
	jobHandler := handlers.NewJobHandler(services.Job)
	huma.Post(api, "/api/v1/jobs/clone", jobHandler.CreateCloneJob)
	huma.Post(api, "/api/v1/jobs/mockup", jobHandler.CreateMockupJob)
	huma.Get(api, "/api/v1/jobs", jobHandler.ListJobs)
	huma.Get(api, "/api/v1/jobs/{id}", jobHandler.GetJob)

	// Synchronous site analysis
	huma.Get(api, "/api/v1/analyze", handlers.NewAnalyzeHandler(services.Analyzer).Analyze)

	// Raw HTTP handler for HTML demo artifacts (non-JSON content type)
	router.Get("/demo/{id}", handlers.NewDemoHandler(services.Job).ServeDemo)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan

		logger.Info("shutting down server")

		// Stop the worker first
		cancel()
		jobWorker.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	// Start server
	logger.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
