// internal/model/batch_campaign.go
package model

import "time"

// Batch campaign lifecycle. SCHEDULED is terminal here; later stages
// (running, completed) belong to the delivery side.
const (
	BatchCampaignStatusDraft     = "DRAFT"
	BatchCampaignStatusScheduled = "SCHEDULED"
)

// BatchCampaign groups the sub-campaigns produced by one partitioning run.
// totalContacts always equals the sum of its sub-campaigns' contact counts.
type BatchCampaign struct {
	ID              string     `db:"id" json:"id"`
	OrganizationID  string     `db:"organization_id" json:"organization_id"`
	Name            string     `db:"name" json:"name"`
	TotalContacts   int        `db:"total_contacts" json:"total_contacts"`
	NumSubCampaigns int        `db:"num_sub_campaigns" json:"num_sub_campaigns"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
