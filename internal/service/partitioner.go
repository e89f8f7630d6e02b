// internal/service/partitioner.go
package service

import (
	"fmt"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

// DefaultBatchCapacity is the domain default for contacts per sub-campaign.
const DefaultBatchCapacity = 400

// SubCampaignPlan is one fixed-capacity window of contacts with its 1-based
// ordinal and derived name.
type SubCampaignPlan struct {
	Ordinal  int
	Name     string
	Contacts []model.Contact
}

// PartitionContacts splits contacts into consecutive windows of at most
// capacity elements, preserving input order. Ordinals are contiguous from 1
// and the last window holds the remainder. Eligibility filtering and the
// empty-input check are the caller's job.
func PartitionContacts(contacts []model.Contact, capacity int, namePrefix string) []SubCampaignPlan {
	if capacity <= 0 {
		capacity = DefaultBatchCapacity
	}

	numWindows := (len(contacts) + capacity - 1) / capacity
	plans := make([]SubCampaignPlan, 0, numWindows)

	for i := 0; i < len(contacts); i += capacity {
		end := i + capacity
		if end > len(contacts) {
			end = len(contacts)
		}
		ordinal := i/capacity + 1
		plans = append(plans, SubCampaignPlan{
			Ordinal:  ordinal,
			Name:     fmt.Sprintf("%s - Batch %d", namePrefix, ordinal),
			Contacts: contacts[i:end],
		})
	}

	return plans
}
