package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/model"
)

type BatchCampaignRepositoryInterface interface {
	Create(ctx context.Context, bc *model.BatchCampaign) error
	GetByID(ctx context.Context, orgID, id string) (*model.BatchCampaign, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, orgID string, offset, limit int) ([]*model.BatchCampaign, int, error)
}

type BatchCampaignRepository struct {
	DB *sql.DB
}

func (r *BatchCampaignRepository) Create(ctx context.Context, bc *model.BatchCampaign) error {
	if bc.ID == "" {
		bc.ID = uuid.New().String()
	}
	bc.CreatedAt = time.Now()
	if bc.Status == "" {
		bc.Status = model.BatchCampaignStatusDraft
	}

	query := `
        INSERT INTO batch_campaigns (id, organization_id, name, total_contacts, num_sub_campaigns, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.DB.ExecContext(ctx, query,
		bc.ID, bc.OrganizationID, bc.Name,
		bc.TotalContacts, bc.NumSubCampaigns, bc.Status, bc.CreatedAt,
	)
	return err
}

func (r *BatchCampaignRepository) GetByID(ctx context.Context, orgID, id string) (*model.BatchCampaign, error) {
	query := `
        SELECT id, organization_id, name, total_contacts, num_sub_campaigns, status, created_at, updated_at
        FROM batch_campaigns
        WHERE organization_id = $1 AND id = $2
    `
	var bc model.BatchCampaign
	err := r.DB.QueryRowContext(ctx, query, orgID, id).Scan(
		&bc.ID, &bc.OrganizationID, &bc.Name,
		&bc.TotalContacts, &bc.NumSubCampaigns, &bc.Status,
		&bc.CreatedAt, &bc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewBatchCampaignNotFound(id)
		}
		return nil, err
	}
	return &bc, nil
}

func (r *BatchCampaignRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE batch_campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

// List returns one page of the organization's batch campaigns, newest first,
// plus the total count for pagination.
func (r *BatchCampaignRepository) List(ctx context.Context, orgID string, offset, limit int) ([]*model.BatchCampaign, int, error) {
	query := `
        SELECT id, organization_id, name, total_contacts, num_sub_campaigns, status, created_at, updated_at
        FROM batch_campaigns
        WHERE organization_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.DB.QueryContext(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	batches := []*model.BatchCampaign{}
	for rows.Next() {
		bc := &model.BatchCampaign{}
		if err := rows.Scan(
			&bc.ID, &bc.OrganizationID, &bc.Name,
			&bc.TotalContacts, &bc.NumSubCampaigns, &bc.Status,
			&bc.CreatedAt, &bc.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		batches = append(batches, bc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM batch_campaigns WHERE organization_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, orgID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}

var _ BatchCampaignRepositoryInterface = (*BatchCampaignRepository)(nil)
