package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lab007/redesigner-api/internal/models"
)

// SQLiteJobRepository implements JobRepository for SQLite.
type SQLiteJobRepository struct {
	db *sql.DB
}

// NewSQLiteJobRepository creates a new SQLite job repository.
func NewSQLiteJobRepository(db *sql.DB) *SQLiteJobRepository {
	return &SQLiteJobRepository{db: db}
}

const jobColumns = `id, type, status, website_url, email, theme, business_type,
	current_page, total_pages, demo_urls_json, mockup_url, generated_html,
	error_message, started_at, completed_at, created_at, updated_at`

func (r *SQLiteJobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (id, type, status, website_url, email, theme, business_type,
			current_page, total_pages, demo_urls_json, mockup_url, generated_html,
			error_message, started_at, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		job.ID,
		job.Type,
		job.Status,
		job.WebsiteURL,
		nullString(job.Email),
		job.Theme,
		nullString(job.BusinessType),
		job.CurrentPage,
		job.TotalPages,
		nullString(marshalDemoURLs(job.DemoURLs)),
		nullString(job.MockupURL),
		nullString(job.GeneratedHTML),
		nullString(job.ErrorMessage),
		nullTime(job.StartedAt),
		nullTime(job.CompletedAt),
		job.CreatedAt.Format(time.RFC3339),
		job.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	return r.scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteJobRepository) List(ctx context.Context, limit, offset int) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := r.scanJobFromRows(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *SQLiteJobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs SET status = ?, business_type = ?, current_page = ?, total_pages = ?,
			demo_urls_json = ?, mockup_url = ?, generated_html = ?, error_message = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		job.Status,
		nullString(job.BusinessType),
		job.CurrentPage,
		job.TotalPages,
		nullString(marshalDemoURLs(job.DemoURLs)),
		nullString(job.MockupURL),
		nullString(job.GeneratedHTML),
		nullString(job.ErrorMessage),
		nullTime(job.StartedAt),
		nullTime(job.CompletedAt),
		time.Now().Format(time.RFC3339),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepository) UpdateStatus(ctx context.Context, id string, status models.JobStatus, currentPage, totalPages int) error {
	query := `
		UPDATE jobs SET status = ?, current_page = ?, total_pages = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		status,
		currentPage,
		totalPages,
		time.Now().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepository) ClaimPending(ctx context.Context) (*models.Job, error) {
	// Begin transaction (SQLite/libsql doesn't support custom isolation levels)
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	// Use UPDATE ... RETURNING to atomically claim and fetch in one statement.
	// A job is claimable when it is queued in its initial state and no worker
	// has started it yet.
	now := time.Now().Format(time.RFC3339)
	query := `
		UPDATE jobs
		SET started_at = ?, updated_at = ?
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = ? AND started_at IS NULL
			ORDER BY created_at ASC
			LIMIT 1
		)
		RETURNING ` + jobColumns

	job, err := r.scanJob(tx.QueryRowContext(ctx, query, now, now, models.JobStatusScraping))
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}
	if job == nil {
		// No queued jobs - this is normal, not an error
		return nil, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return job, nil
}

// DeleteOlderThan deletes finished jobs older than the specified time and
// returns the deleted job IDs.
func (r *SQLiteJobRepository) DeleteOlderThan(ctx context.Context, before time.Time) ([]string, error) {
	query := `SELECT id FROM jobs WHERE created_at < ? AND (status = ? OR status LIKE 'error:%')`
	rows, err := r.db.QueryContext(ctx, query, before.Format(time.RFC3339), models.JobStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query old jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job ids: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	deleteQuery := `DELETE FROM jobs WHERE created_at < ? AND (status = ? OR status LIKE 'error:%')`
	_, err = r.db.ExecContext(ctx, deleteQuery, before.Format(time.RFC3339), models.JobStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to delete old jobs: %w", err)
	}

	return ids, nil
}

// MarkStaleRunningJobsFailed fails jobs that have been in flight longer than
// maxAge. This cleans up jobs that were left mid-pipeline by a server restart.
func (r *SQLiteJobRepository) MarkStaleRunningJobsFailed(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Format(time.RFC3339)
	now := time.Now().Format(time.RFC3339)

	query := `
		UPDATE jobs
		SET status = ?, error_message = ?, completed_at = ?, updated_at = ?
		WHERE status != ? AND status NOT LIKE 'error:%' AND started_at < ?
	`
	result, err := r.db.ExecContext(ctx, query,
		models.JobStatusError("job terminated: server restart or timeout"),
		"job terminated: server restart or timeout",
		now,
		now,
		models.JobStatusCompleted,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale jobs as failed: %w", err)
	}

	count, _ := result.RowsAffected()
	return count, nil
}

func (r *SQLiteJobRepository) scanJob(row *sql.Row) (*models.Job, error) {
	var job models.Job
	var createdAt, updatedAt string
	var email, businessType, demoURLs, mockupURL, generatedHTML, errorMessage sql.NullString
	var startedAt, completedAt sql.NullString

	err := row.Scan(
		&job.ID, &job.Type, &job.Status, &job.WebsiteURL, &email, &job.Theme,
		&businessType, &job.CurrentPage, &job.TotalPages, &demoURLs, &mockupURL,
		&generatedHTML, &errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job.Email = email.String
	job.BusinessType = businessType.String
	job.DemoURLs = unmarshalDemoURLs(demoURLs.String)
	job.MockupURL = mockupURL.String
	job.GeneratedHTML = generatedHTML.String
	job.ErrorMessage = errorMessage.String
	job.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	job.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if startedAt.Valid {
		t, _ := time.Parse(time.RFC3339, startedAt.String)
		job.StartedAt = &t
	}
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		job.CompletedAt = &t
	}

	return &job, nil
}

func (r *SQLiteJobRepository) scanJobFromRows(rows *sql.Rows) (*models.Job, error) {
	var job models.Job
	var createdAt, updatedAt string
	var email, businessType, demoURLs, mockupURL, generatedHTML, errorMessage sql.NullString
	var startedAt, completedAt sql.NullString

	err := rows.Scan(
		&job.ID, &job.Type, &job.Status, &job.WebsiteURL, &email, &job.Theme,
		&businessType, &job.CurrentPage, &job.TotalPages, &demoURLs, &mockupURL,
		&generatedHTML, &errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job.Email = email.String
	job.BusinessType = businessType.String
	job.DemoURLs = unmarshalDemoURLs(demoURLs.String)
	job.MockupURL = mockupURL.String
	job.GeneratedHTML = generatedHTML.String
	job.ErrorMessage = errorMessage.String
	job.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	job.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if startedAt.Valid {
		t, _ := time.Parse(time.RFC3339, startedAt.String)
		job.StartedAt = &t
	}
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		job.CompletedAt = &t
	}

	return &job, nil
}

func marshalDemoURLs(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return ""
	}
	return string(data)
}

func unmarshalDemoURLs(data string) []string {
	if data == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(data), &urls); err != nil {
		return nil
	}
	return urls
}

// Helper functions
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
