// internal/model/message_job.go
package model

import "time"

const (
	MessageJobStatusPending = "PENDING"
	MessageJobStatusQueued  = "QUEUED"
)

// MessageJob is one unit of outbound work: exactly one per
// (sub-campaign, contact) pair. Payload is an opaque serialized structure
// interpreted by the downstream delivery worker.
type MessageJob struct {
	ID         string    `db:"id" json:"id"`
	CampaignID string    `db:"campaign_id" json:"campaign_id"`
	ContactID  string    `db:"contact_id" json:"contact_id"`
	Payload    string    `db:"payload" json:"payload"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
