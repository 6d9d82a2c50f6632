package service

import (
	"log/slog"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/crawler"
	"github.com/lab007/redesigner-api/internal/llm"
	"github.com/lab007/redesigner-api/internal/repository"
)

// Services holds all service instances.
type Services struct {
	Job      *JobService
	Analyzer *AnalyzerService
	Redesign *RedesignService
	Email    *EmailService
	Webhook  *WebhookService
	Cleanup  *CleanupService
}

// NewServices creates all service instances.
func NewServices(cfg *config.Config, repos *repository.Repositories, logger *slog.Logger) *Services {
	siteCrawler := crawler.New(crawler.Options{
		MaxPages:       cfg.CrawlMaxPages,
		Delay:          cfg.CrawlDelay,
		FetchTimeout:   cfg.FetchTimeout,
		LinkCheckLimit: cfg.LinkCheckLimit,
	}, logger)

	gen := llm.NewClient(cfg.OpenAIAPIKey)

	jobSvc := NewJobService(cfg, repos, logger)
	emailSvc := NewEmailService(cfg, logger)
	webhookSvc := NewWebhookService(logger)

	return &Services{
		Job:      jobSvc,
		Analyzer: NewAnalyzerService(siteCrawler, logger),
		Redesign: NewRedesignService(cfg, repos, jobSvc, siteCrawler, gen, emailSvc, webhookSvc, logger),
		Email:    emailSvc,
		Webhook:  webhookSvc,
		Cleanup:  NewCleanupService(repos.Job, repos.PageDesign, logger),
	}
}
