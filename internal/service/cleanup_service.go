package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lab007/redesigner-api/internal/repository"
)

// CleanupService handles cleanup of old job data.
type CleanupService struct {
	jobRepo        repository.JobRepository
	pageDesignRepo repository.PageDesignRepository
	logger         *slog.Logger
}

// NewCleanupService creates a new cleanup service.
func NewCleanupService(
	jobRepo repository.JobRepository,
	pageDesignRepo repository.PageDesignRepository,
	logger *slog.Logger,
) *CleanupService {
	return &CleanupService{
		jobRepo:        jobRepo,
		pageDesignRepo: pageDesignRepo,
		logger:         logger.With("component", "cleanup"),
	}
}

// CleanupResult contains the results of a cleanup operation.
type CleanupResult struct {
	JobsDeleted        int
	PageDesignsDeleted int64
	Errors             []error
}

// CleanupOldJobs removes finished jobs older than maxAge together with
// their page design artifacts. Jobs still in flight are never touched.
func (s *CleanupService) CleanupOldJobs(ctx context.Context, maxAge time.Duration) (*CleanupResult, error) {
	result := &CleanupResult{}
	cutoff := time.Now().Add(-maxAge)

	s.logger.Info("starting job cleanup",
		"max_age", maxAge.String(),
		"cutoff", cutoff.Format(time.RFC3339),
	)

	deletedJobIDs, err := s.jobRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to delete old jobs", "error", err)
		result.Errors = append(result.Errors, err)
	} else {
		result.JobsDeleted = len(deletedJobIDs)
	}

	if len(deletedJobIDs) > 0 {
		count, err := s.pageDesignRepo.DeleteByJobIDs(ctx, deletedJobIDs)
		if err != nil {
			s.logger.Error("failed to delete page designs", "error", err)
			result.Errors = append(result.Errors, err)
		} else {
			result.PageDesignsDeleted = count
		}
	}

	s.logger.Info("cleanup completed",
		"jobs_deleted", result.JobsDeleted,
		"page_designs_deleted", result.PageDesignsDeleted,
		"errors", len(result.Errors),
	)

	return result, nil
}

// RunScheduledCleanup runs the cleanup task as a background goroutine.
// It runs immediately on start and then at the specified interval.
func (s *CleanupService) RunScheduledCleanup(ctx context.Context, maxAge, interval time.Duration) {
	s.logger.Info("starting scheduled cleanup",
		"max_age", maxAge.String(),
		"interval", interval.String(),
	)

	// Run immediately on start
	if _, err := s.CleanupOldJobs(ctx, maxAge); err != nil {
		s.logger.Error("initial cleanup failed", "error", err)
	}

	// Then run at interval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduled cleanup stopped")
			return
		case <-ticker.C:
			if _, err := s.CleanupOldJobs(ctx, maxAge); err != nil {
				s.logger.Error("scheduled cleanup failed", "error", err)
			}
		}
	}
}
