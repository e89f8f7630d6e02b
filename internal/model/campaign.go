// internal/model/campaign.go
package model

import "time"

// Campaign is one sub-campaign of a BatchCampaign. Its contact membership is
// fixed at creation; contacts are never reassigned between sub-campaigns.
type Campaign struct {
	ID              string     `db:"id" json:"id"`
	BatchCampaignID string     `db:"batch_campaign_id" json:"batch_campaign_id"`
	OrganizationID  string     `db:"organization_id" json:"organization_id"`
	Name            string     `db:"name" json:"name"`
	Ordinal         int        `db:"ordinal" json:"ordinal"`
	TemplateRef     *string    `db:"template_ref" json:"template_ref,omitempty"`
	ScheduleAt      *time.Time `db:"schedule_at" json:"schedule_at,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
