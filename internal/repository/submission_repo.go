package repository

import (
	"database/sql"
	"fmt"

	"github.com/garyjia/doc-request/internal/models"
	"go.uber.org/zap"
)

// SubmissionRepository handles submission log database operations
type SubmissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the submissions table if it does not exist.
func (r *SubmissionRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client TEXT NOT NULL,
			period TEXT NOT NULL,
			file_count INTEGER NOT NULL,
			reference TEXT NOT NULL,
			sent_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		r.logger.Error("Failed to create submissions table", zap.Error(err))
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}

// Create records a delivered submission
func (r *SubmissionRepository) Create(record *models.SubmissionRecord) error {
	query := `
		INSERT INTO submissions (client, period, file_count, reference, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		record.Client,
		record.Period,
		record.FileCount,
		record.Reference,
		record.SentAt,
	)
	if err != nil {
		r.logger.Error("Failed to create submission record", zap.Error(err))
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// ListRecent returns the most recent submissions, newest first
func (r *SubmissionRepository) ListRecent(limit int) ([]*models.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, client, period, file_count, reference, sent_at, created_at
		FROM submissions
		ORDER BY sent_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("Failed to list submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var records []*models.SubmissionRecord
	for rows.Next() {
		var rec models.SubmissionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Client,
			&rec.Period,
			&rec.FileCount,
			&rec.Reference,
			&rec.SentAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return records, nil
}
