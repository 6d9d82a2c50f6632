// Package service contains the business logic layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/models"
	"github.com/lab007/redesigner-api/internal/repository"
)

// JobService manages job records and their observable state.
type JobService struct {
	cfg    *config.Config
	repos  *repository.Repositories
	logger *slog.Logger
}

// NewJobService creates a new job service.
func NewJobService(cfg *config.Config, repos *repository.Repositories, logger *slog.Logger) *JobService {
	return &JobService{
		cfg:    cfg,
		repos:  repos,
		logger: logger,
	}
}

// CreateJobInput carries the submission fields for a new job.
type CreateJobInput struct {
	Type         models.JobType
	WebsiteURL   string
	Email        string
	Theme        string
	BusinessType string
	PageCount    int
}

// CreateJob validates input, creates the job row in its initial state, and
// returns it. All pipeline work happens later in the background worker.
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	website := NormalizeURL(strings.TrimSpace(input.WebsiteURL))
	if website == "" {
		return nil, fmt.Errorf("website URL is required")
	}

	theme := strings.TrimSpace(input.Theme)
	if theme == "" {
		theme = "modern"
	}

	pageCount := input.PageCount
	if pageCount < 0 {
		pageCount = 0
	}
	if pageCount > s.cfg.CrawlMaxPages {
		pageCount = s.cfg.CrawlMaxPages
	}

	now := time.Now().UTC()
	job := &models.Job{
		ID:           ulid.Make().String(),
		Type:         input.Type,
		Status:       models.JobStatusScraping,
		WebsiteURL:   website,
		Email:        strings.TrimSpace(input.Email),
		Theme:        theme,
		BusinessType: strings.TrimSpace(input.BusinessType),
		TotalPages:   pageCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repos.Job.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("job created",
		"job_id", job.ID,
		"type", job.Type,
		"website", job.WebsiteURL,
		"theme", job.Theme,
	)

	return job, nil
}

// GetJob returns a job by id, or nil when it does not exist.
func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return s.repos.Job.GetByID(ctx, id)
}

// ListJobs returns recent jobs, newest first.
func (s *JobService) ListJobs(ctx context.Context, limit, offset int) ([]*models.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repos.Job.List(ctx, limit, offset)
}

// UpdateStatus advances a job's status. Backward transitions are rejected so
// an observer polling the status endpoint always sees a non-decreasing
// sequence.
func (s *JobService) UpdateStatus(ctx context.Context, job *models.Job, status models.JobStatus, currentPage, totalPages int) error {
	if !status.IsError() && status.Rank() < job.Status.Rank() {
		return fmt.Errorf("backward status transition %s -> %s rejected", job.Status, status)
	}
	if err := s.repos.Job.UpdateStatus(ctx, job.ID, status, currentPage, totalPages); err != nil {
		return err
	}
	job.Status = status
	job.CurrentPage = currentPage
	job.TotalPages = totalPages
	return nil
}

// GetDemo resolves a demo id to a branded HTML artifact. The id may refer
// to a job (serving its primary page) or an individual page design. Returns
// empty when neither exists or no artifact was generated.
func (s *JobService) GetDemo(ctx context.Context, id string) (string, error) {
	job, err := s.repos.Job.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if job != nil && job.GeneratedHTML != "" {
		return job.GeneratedHTML, nil
	}

	design, err := s.repos.PageDesign.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if design != nil {
		return design.GeneratedHTML, nil
	}

	return "", nil
}

// DemoURL builds the public URL for a demo artifact.
func (s *JobService) DemoURL(artifactID string) string {
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/demo/" + artifactID
}

// StatusURL builds the polling URL for a job.
func (s *JobService) StatusURL(jobID string) string {
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/api/v1/jobs/" + jobID
}

// StatusDescription maps a job's status to user-facing progress text.
func StatusDescription(job *models.Job) string {
	mockup := job.Type == models.JobTypeMockup
	switch {
	case job.Status == models.JobStatusScraping:
		return "Analyzing your website content and structure..."
	case job.Status == models.JobStatusAnalyzing:
		return "AI is processing your content and generating design ideas..."
	case job.Status == models.JobStatusProcessingPage:
		return fmt.Sprintf("Redesigning page %d of %d...", job.CurrentPage, job.TotalPages)
	case job.Status == models.JobStatusGenerating:
		if mockup {
			return "Creating your website mockup with AI..."
		}
		return "Generating your redesigned website..."
	case job.Status == models.JobStatusCompleted:
		if mockup {
			return "Your website mockup is ready!"
		}
		return "Your redesigned website is ready!"
	case job.Status.IsError():
		return "An error occurred during processing. Please try again."
	default:
		return "Processing your request..."
	}
}

// NormalizeURL prepends https:// when the URL carries no scheme.
func NormalizeURL(url string) string {
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}
