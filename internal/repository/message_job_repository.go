package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

type MessageJobRepositoryInterface interface {
	CreateMany(ctx context.Context, jobs []model.MessageJob) error
	MarkQueued(ctx context.Context, ids []string) error
	CountsByCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error)
	StatsByBatchCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error)
}

type MessageJobRepository struct {
	DB *sql.DB
}

// CreateMany fans out one sub-campaign's jobs in a single statement, so a
// sub-campaign never ends up with a silently partial job set. The unique
// (campaign_id, contact_id) index keeps retries from duplicating pairs.
func (r *MessageJobRepository) CreateMany(ctx context.Context, jobs []model.MessageJob) error {
	if len(jobs) == 0 {
		return nil
	}

	query := `INSERT INTO message_jobs (id, campaign_id, contact_id, payload, status, created_at) VALUES `
	args := []interface{}{}
	argPos := 1

	now := time.Now()
	for i := range jobs {
		j := &jobs[i]
		if j.ID == "" {
			j.ID = uuid.New().String()
		}
		if j.CreatedAt.IsZero() {
			j.CreatedAt = now
		}
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			argPos, argPos+1, argPos+2, argPos+3, argPos+4, argPos+5)
		args = append(args, j.ID, j.CampaignID, j.ContactID, j.Payload, j.Status, j.CreatedAt)
		argPos += 6
	}
	query += ` ON CONFLICT (campaign_id, contact_id) DO NOTHING`

	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

// MarkQueued transitions the given jobs to QUEUED after a successful publish.
func (r *MessageJobRepository) MarkQueued(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE message_jobs SET status = 'QUEUED' WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

// CountsByCampaign returns job counts keyed by sub-campaign ID.
func (r *MessageJobRepository) CountsByCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error) {
	query := `
        SELECT mj.campaign_id, COUNT(*)
        FROM message_jobs mj
        JOIN campaigns c ON c.id = mj.campaign_id
        WHERE c.batch_campaign_id = $1
        GROUP BY mj.campaign_id
    `
	rows, err := r.DB.QueryContext(ctx, query, batchCampaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var campaignID string
		var count int
		if err := rows.Scan(&campaignID, &count); err != nil {
			return nil, err
		}
		counts[campaignID] = count
	}
	return counts, rows.Err()
}

// StatsByBatchCampaign returns job counts by status across the whole batch.
func (r *MessageJobRepository) StatsByBatchCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error) {
	query := `
        SELECT mj.status, COUNT(*)
        FROM message_jobs mj
        JOIN campaigns c ON c.id = mj.campaign_id
        WHERE c.batch_campaign_id = $1
        GROUP BY mj.status
    `
	rows, err := r.DB.QueryContext(ctx, query, batchCampaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"total": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		stats["total"] += count
	}
	return stats, rows.Err()
}

var _ MessageJobRepositoryInterface = (*MessageJobRepository)(nil)
