// Package repository defines repository interfaces for data access.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lab007/redesigner-api/internal/models"
)

// JobRepository defines methods for job data access.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// GetByID returns the job or nil if no job exists with the given id.
	GetByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, limit, offset int) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	// UpdateStatus updates only the status and progress counters of a job.
	UpdateStatus(ctx context.Context, id string, status models.JobStatus, currentPage, totalPages int) error
	// ClaimPending atomically claims the oldest unstarted job and returns it,
	// or nil when no work is queued.
	ClaimPending(ctx context.Context) (*models.Job, error)
	// DeleteOlderThan deletes finished jobs older than the specified time
	// and returns the deleted job IDs.
	DeleteOlderThan(ctx context.Context, before time.Time) ([]string, error)
	// MarkStaleRunningJobsFailed fails jobs that have been in flight longer
	// than maxAge. Returns the number of jobs failed.
	MarkStaleRunningJobsFailed(ctx context.Context, maxAge time.Duration) (int64, error)
}

// PageDesignRepository defines methods for page design data access.
type PageDesignRepository interface {
	Create(ctx context.Context, design *models.PageDesign) error
	// GetByID returns the page design or nil if none exists with the given id.
	GetByID(ctx context.Context, id string) (*models.PageDesign, error)
	// GetByJobID returns a job's page designs ordered by page number.
	GetByJobID(ctx context.Context, jobID string) ([]*models.PageDesign, error)
	CountByJobID(ctx context.Context, jobID string) (int, error)
	// DeleteByJobIDs deletes all page designs for the specified job IDs and
	// returns how many rows were removed.
	DeleteByJobIDs(ctx context.Context, jobIDs []string) (int64, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	Job        JobRepository
	PageDesign PageDesignRepository
}

// NewRepositories creates all repository instances.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Job:        NewSQLiteJobRepository(db),
		PageDesign: NewSQLitePageDesignRepository(db),
	}
}
