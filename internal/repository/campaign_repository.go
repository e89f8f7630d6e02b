package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	ListByBatchCampaign(ctx context.Context, batchCampaignID string) ([]*model.Campaign, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.BatchCampaignStatusDraft
	}

	query := `
        INSERT INTO campaigns (id, batch_campaign_id, organization_id, name, ordinal, template_ref, schedule_at, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.BatchCampaignID, c.OrganizationID, c.Name,
		c.Ordinal, c.TemplateRef, c.ScheduleAt, c.Status, c.CreatedAt,
	)
	return err
}

// ListByBatchCampaign returns a batch campaign's sub-campaigns in ordinal
// order.
func (r *CampaignRepository) ListByBatchCampaign(ctx context.Context, batchCampaignID string) ([]*model.Campaign, error) {
	query := `
        SELECT id, batch_campaign_id, organization_id, name, ordinal, template_ref, schedule_at, status, created_at
        FROM campaigns
        WHERE batch_campaign_id = $1
        ORDER BY ordinal ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, batchCampaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.BatchCampaignID, &c.OrganizationID, &c.Name,
			&c.Ordinal, &c.TemplateRef, &c.ScheduleAt, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
