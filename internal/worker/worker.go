package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lab007/redesigner-api/internal/models"
	"github.com/lab007/redesigner-api/internal/repository"
)

// JobRunner executes the pipeline for a claimed job. Implemented by the
// redesign service.
type JobRunner interface {
	RunCloneJob(ctx context.Context, job *models.Job) error
	RunMockupJob(ctx context.Context, job *models.Job) error

	// NotifyFailure delivers best-effort notifications for a job the worker
	// has marked failed.
	NotifyFailure(ctx context.Context, job *models.Job)
}

// Worker processes background jobs.
type Worker struct {
	jobRepo      repository.JobRepository
	runner       JobRunner
	pollInterval time.Duration
	concurrency  int
	stop         chan struct{}
	wg           sync.WaitGroup
	logger       *slog.Logger
}

// Config holds worker configuration.
type Config struct {
	PollInterval time.Duration
	Concurrency  int
}

// New creates a new worker.
func New(
	jobRepo repository.JobRepository,
	runner JobRunner,
	cfg Config,
	logger *slog.Logger,
) *Worker {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		jobRepo:      jobRepo,
		runner:       runner,
		pollInterval: cfg.PollInterval,
		concurrency:  cfg.Concurrency,
		stop:         make(chan struct{}),
		logger:       logger.With("component", "worker"),
	}
}

// Start begins processing jobs.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("starting", "concurrency", w.concurrency)

	// Start concurrent workers
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i)
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.logger.Info("stopping")
	close(w.stop)
	w.wg.Wait()
	w.logger.Info("stopped")
}

func (w *Worker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processNextJob(ctx, workerID)
		}
	}
}

func (w *Worker) processNextJob(ctx context.Context, workerID int) {
	// Claim a pending job
	job, err := w.jobRepo.ClaimPending(ctx)
	if err != nil {
		w.logger.Error("failed to claim job", "worker_id", workerID, "error", err)
		return
	}
	if job == nil {
		return // No pending jobs
	}

	w.logger.Info("processing job", "worker_id", workerID, "job_id", job.ID, "type", job.Type)

	// Process based on job type
	switch job.Type {
	case models.JobTypeClone:
		if err := w.runner.RunCloneJob(ctx, job); err != nil {
			w.failJob(ctx, job, err.Error())
			return
		}
	case models.JobTypeMockup:
		if err := w.runner.RunMockupJob(ctx, job); err != nil {
			w.failJob(ctx, job, err.Error())
			return
		}
	default:
		w.failJob(ctx, job, "unknown job type")
		return
	}

	w.logger.Info("completed job", "worker_id", workerID, "job_id", job.ID)
}

func (w *Worker) failJob(ctx context.Context, job *models.Job, errMsg string) {
	now := time.Now()
	job.Status = models.JobStatusError(errMsg)
	job.ErrorMessage = errMsg
	job.CompletedAt = &now

	if err := w.jobRepo.Update(ctx, job); err != nil {
		w.logger.Error("failed to update job", "job_id", job.ID, "error", err)
	}

	w.logger.Error("job failed", "job_id", job.ID, "error", errMsg)

	// The requester hears about failures too, not just successes.
	w.runner.NotifyFailure(ctx, job)
}
