package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

type ImportBatchRepositoryInterface interface {
	Create(ctx context.Context, batch *model.ImportBatch) error
}

type ImportBatchRepository struct {
	DB *sql.DB
}

// Create records the write-once summary of one import attempt.
func (r *ImportBatchRepository) Create(ctx context.Context, batch *model.ImportBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	batch.CreatedAt = time.Now()
	if batch.Status == "" {
		batch.Status = model.ImportBatchStatusCompleted
	}

	query := `
        INSERT INTO import_batches (id, organization_id, filename, total_rows, valid_rows, invalid_rows, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.DB.ExecContext(ctx, query,
		batch.ID, batch.OrganizationID, batch.Filename,
		batch.TotalRows, batch.ValidRows, batch.InvalidRows,
		batch.Status, batch.CreatedAt,
	)
	return err
}

var _ ImportBatchRepositoryInterface = (*ImportBatchRepository)(nil)
