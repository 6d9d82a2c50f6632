package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/crawler"
	"github.com/lab007/redesigner-api/internal/extractor"
	"github.com/lab007/redesigner-api/internal/models"
	"github.com/lab007/redesigner-api/internal/prompt"
	"github.com/lab007/redesigner-api/internal/repository"
	"github.com/lab007/redesigner-api/internal/sanitizer"
)

// SiteCrawler fetches and extracts a site's pages.
type SiteCrawler interface {
	Crawl(ctx context.Context, baseURL string, maxPages int) (*crawler.Result, error)
}

// Generator produces redesigned HTML and mockup images from prompts.
type Generator interface {
	GenerateHTML(ctx context.Context, systemMessage, userPrompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers job outcome notifications, success and failure alike.
// Delivery failures never affect job status.
type Notifier interface {
	Enabled() bool
	SendResult(ctx context.Context, job *models.Job) error
}

// RedesignService runs the full pipeline for a claimed job: crawl, prompt,
// generate, sanitize, persist, notify. It is the only actor that advances a
// job's status past its initial state.
type RedesignService struct {
	cfg     *config.Config
	repos   *repository.Repositories
	jobSvc  *JobService
	crawler SiteCrawler
	gen     Generator
	email   Notifier
	webhook *WebhookService
	logger  *slog.Logger
}

// NewRedesignService creates a new redesign service.
func NewRedesignService(
	cfg *config.Config,
	repos *repository.Repositories,
	jobSvc *JobService,
	siteCrawler SiteCrawler,
	gen Generator,
	email Notifier,
	webhook *WebhookService,
	logger *slog.Logger,
) *RedesignService {
	return &RedesignService{
		cfg:     cfg,
		repos:   repos,
		jobSvc:  jobSvc,
		crawler: siteCrawler,
		gen:     gen,
		email:   email,
		webhook: webhook,
		logger:  logger.With("component", "redesign"),
	}
}

// RunCloneJob executes the multi-page redesign pipeline. Each crawled page
// is prompted, generated, sanitized, branded, and persisted as its own
// artifact row. A single page's failure is logged and skipped; the job only
// fails when every page fails.
func (s *RedesignService) RunCloneJob(ctx context.Context, job *models.Job) error {
	result, err := s.crawler.Crawl(ctx, job.WebsiteURL, job.TotalPages)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", job.WebsiteURL, err)
	}
	pages := result.Pages

	if err := s.jobSvc.UpdateStatus(ctx, job, models.JobStatusAnalyzing, 0, len(pages)); err != nil {
		return err
	}

	rootContent := pages[0].Content
	if job.BusinessType == "" {
		job.BusinessType = extractor.EstimateBusinessType(rootContent)
	}

	var designs []*models.PageDesign
	for i, page := range pages {
		if err := s.jobSvc.UpdateStatus(ctx, job, models.JobStatusProcessingPage, i+1, len(pages)); err != nil {
			return err
		}

		design, err := s.generatePageDesign(ctx, job, page, i+1)
		if err != nil {
			s.logger.Warn("page redesign failed, skipping",
				"job_id", job.ID,
				"page", i+1,
				"url", page.URL,
				"error", err,
			)
			continue
		}
		designs = append(designs, design)
	}

	if len(designs) == 0 {
		return fmt.Errorf("all %d pages failed to generate", len(pages))
	}

	if err := s.jobSvc.UpdateStatus(ctx, job, models.JobStatusGenerating, len(pages), len(pages)); err != nil {
		return err
	}

	// One illustrative mockup image for the primary page. Image generation
	// failing must not fail an otherwise successful redesign.
	if mockupURL, err := s.gen.GenerateImage(ctx, prompt.Mockup(rootContent, job.BusinessType, job.Theme)); err != nil {
		s.logger.Warn("mockup image generation failed, skipping", "job_id", job.ID, "error", err)
	} else {
		job.MockupURL = mockupURL
	}

	job.DemoURLs = make([]string, 0, len(designs))
	for _, design := range designs {
		job.DemoURLs = append(job.DemoURLs, s.jobSvc.DemoURL(design.ID))
	}
	job.GeneratedHTML = designs[0].GeneratedHTML

	return s.complete(ctx, job)
}

// RunMockupJob executes the image-only pipeline: fetch the root page, build
// the image prompt, generate one mockup, persist its URL.
func (s *RedesignService) RunMockupJob(ctx context.Context, job *models.Job) error {
	result, err := s.crawler.Crawl(ctx, job.WebsiteURL, 1)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", job.WebsiteURL, err)
	}
	content := result.Pages[0].Content

	if job.BusinessType == "" {
		job.BusinessType = extractor.EstimateBusinessType(content)
	}

	if err := s.jobSvc.UpdateStatus(ctx, job, models.JobStatusGenerating, 1, 1); err != nil {
		return err
	}

	imageURL, err := s.gen.GenerateImage(ctx, prompt.Mockup(content, job.BusinessType, job.Theme))
	if err != nil {
		return err
	}
	job.MockupURL = imageURL

	return s.complete(ctx, job)
}

// generatePageDesign runs prompt -> model -> sanitize -> brand -> persist
// for one page.
func (s *RedesignService) generatePageDesign(ctx context.Context, job *models.Job, page crawler.Page, pageNumber int) (*models.PageDesign, error) {
	raw, err := s.gen.GenerateHTML(ctx, prompt.SystemMessage, prompt.Redesign(page.Content, job.BusinessType, job.Theme))
	if err != nil {
		return nil, err
	}

	clean, err := sanitizer.Sanitize(raw)
	if err != nil {
		return nil, err
	}
	branded := sanitizer.Brand(clean, page.Content.Title, page.URL)

	design := &models.PageDesign{
		ID:            ulid.Make().String(),
		JobID:         job.ID,
		PageNumber:    pageNumber,
		Title:         page.Content.Title,
		SourceURL:     page.URL,
		GeneratedHTML: branded,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repos.PageDesign.Create(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to persist page design: %w", err)
	}
	return design, nil
}

// complete marks the job finished, persists its artifacts, and fires
// notifications. Notification failures are logged and swallowed.
func (s *RedesignService) complete(ctx context.Context, job *models.Job) error {
	now := time.Now().UTC()
	job.Status = models.JobStatusCompleted
	job.CompletedAt = &now
	job.CurrentPage = job.TotalPages

	if err := s.repos.Job.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to persist completed job: %w", err)
	}

	s.logger.Info("job completed",
		"job_id", job.ID,
		"type", job.Type,
		"demo_urls", len(job.DemoURLs),
		"mockup", job.MockupURL != "",
	)

	s.notify(ctx, job)
	return nil
}

// NotifyFailure delivers notifications for a job that has already been
// marked failed. Best-effort, same as the completion path.
func (s *RedesignService) NotifyFailure(ctx context.Context, job *models.Job) {
	s.notify(ctx, job)
}

// notify sends the outcome email and webhook. Both are best-effort.
func (s *RedesignService) notify(ctx context.Context, job *models.Job) {
	if s.email != nil && s.email.Enabled() && job.Email != "" {
		if err := s.email.SendResult(ctx, job); err != nil {
			s.logger.Warn("notification email failed", "job_id", job.ID, "error", err)
		}
	}

	if s.webhook != nil && s.cfg.NotifyWebhookURL != "" {
		event := "job.completed"
		if job.Status.IsError() {
			event = "job.failed"
		}
		s.webhook.Send(ctx, s.cfg.NotifyWebhookURL, map[string]any{
			"event":     event,
			"jobId":     job.ID,
			"jobType":   job.Type,
			"status":    job.Status,
			"website":   job.WebsiteURL,
			"demoUrls":  job.DemoURLs,
			"mockupUrl": job.MockupURL,
		})
	}
}
