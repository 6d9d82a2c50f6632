package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lab007/redesigner-api/internal/models"
)

// SQLitePageDesignRepository implements PageDesignRepository for SQLite.
type SQLitePageDesignRepository struct {
	db *sql.DB
}

// NewSQLitePageDesignRepository creates a new SQLite page design repository.
func NewSQLitePageDesignRepository(db *sql.DB) *SQLitePageDesignRepository {
	return &SQLitePageDesignRepository{db: db}
}

func (r *SQLitePageDesignRepository) Create(ctx context.Context, design *models.PageDesign) error {
	query := `
		INSERT INTO page_designs (id, job_id, page_number, title, source_url, generated_html, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		design.ID,
		design.JobID,
		design.PageNumber,
		nullString(design.Title),
		design.SourceURL,
		design.GeneratedHTML,
		design.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create page design: %w", err)
	}
	return nil
}

func (r *SQLitePageDesignRepository) GetByID(ctx context.Context, id string) (*models.PageDesign, error) {
	query := `
		SELECT id, job_id, page_number, title, source_url, generated_html, created_at
		FROM page_designs WHERE id = ?
	`
	var design models.PageDesign
	var title sql.NullString
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&design.ID, &design.JobID, &design.PageNumber, &title,
		&design.SourceURL, &design.GeneratedHTML, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan page design: %w", err)
	}

	design.Title = title.String
	design.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &design, nil
}

func (r *SQLitePageDesignRepository) GetByJobID(ctx context.Context, jobID string) ([]*models.PageDesign, error) {
	query := `
		SELECT id, job_id, page_number, title, source_url, generated_html, created_at
		FROM page_designs WHERE job_id = ? ORDER BY page_number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query page designs: %w", err)
	}
	defer rows.Close()

	var designs []*models.PageDesign
	for rows.Next() {
		var design models.PageDesign
		var title sql.NullString
		var createdAt string

		if err := rows.Scan(
			&design.ID, &design.JobID, &design.PageNumber, &title,
			&design.SourceURL, &design.GeneratedHTML, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page design: %w", err)
		}

		design.Title = title.String
		design.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		designs = append(designs, &design)
	}
	return designs, rows.Err()
}

func (r *SQLitePageDesignRepository) CountByJobID(ctx context.Context, jobID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_designs WHERE job_id = ?`, jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count page designs: %w", err)
	}
	return count, nil
}

func (r *SQLitePageDesignRepository) DeleteByJobIDs(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(jobIDs))
	args := make([]any, len(jobIDs))
	for i, id := range jobIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `DELETE FROM page_designs WHERE job_id IN (` + strings.Join(placeholders, ", ") + `)`
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete page designs: %w", err)
	}

	count, _ := result.RowsAffected()
	return count, nil
}
