// internal/service/batch_campaign_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/model"
	"github.com/unclebandit/wabablast-backend/internal/queue"
	"github.com/unclebandit/wabablast-backend/internal/repository"
)

// JobsTopic is the queue that carries freshly scheduled message job IDs.
const JobsTopic = "campaign_jobs"

// BatchCampaignService drives one batch campaign from eligibility resolution
// through partitioning, fan-out, and the DRAFT -> SCHEDULED transition.
type BatchCampaignService struct {
	BatchCampaignRepo repository.BatchCampaignRepositoryInterface
	CampaignRepo      repository.CampaignRepositoryInterface
	ContactRepo       repository.ContactRepositoryInterface
	JobRepo           repository.MessageJobRepositoryInterface
	OrgRepo           repository.OrganizationRepositoryInterface
	Queue             queue.Queue
	BatchCapacity     int
}

type CreateBatchCampaignInput struct {
	Name        string
	ContactIDs  []string
	Message     string
	TemplateRef *string
	MediaID     *string
	ScheduleAt  *time.Time
}

type SubCampaignSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Ordinal      int    `json:"ordinal"`
	ContactCount int    `json:"contact_count"`
}

type BatchCampaignResult struct {
	BatchCampaignID string               `json:"batch_campaign_id"`
	TotalContacts   int                  `json:"total_contacts"`
	NumSubCampaigns int                  `json:"num_sub_campaigns"`
	Status          string               `json:"status"`
	SubCampaigns    []SubCampaignSummary `json:"sub_campaigns"`
}

// CreateBatchCampaign resolves the requested contacts against the
// organization's opted-in ACTIVE set, then creates the batch campaign, its
// sub-campaigns, and one message job per (sub-campaign, contact).
//
// Intake is all-or-nothing: zero eligible contacts or a partially eligible
// request fails before any record is written. A failure during fan-out leaves
// the batch campaign in DRAFT, which consumers must treat as not-yet-usable.
func (s *BatchCampaignService) CreateBatchCampaign(ctx context.Context, orgID string, in CreateBatchCampaignInput) (*BatchCampaignResult, error) {
	if err := s.OrgRepo.Upsert(ctx, orgID, orgID); err != nil {
		return nil, fmt.Errorf("ensure organization: %w", err)
	}

	eligible, err := s.ContactRepo.FindEligibleByIDs(ctx, orgID, in.ContactIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve contacts: %w", err)
	}
	if len(eligible) == 0 {
		return nil, appErrors.NewNoEligibleContacts()
	}
	if len(eligible) < len(in.ContactIDs) {
		return nil, appErrors.NewPartialEligibility(len(eligible), len(in.ContactIDs))
	}

	capacity := s.BatchCapacity
	if capacity <= 0 {
		capacity = DefaultBatchCapacity
	}

	totalContacts := len(eligible)
	bc := &model.BatchCampaign{
		OrganizationID:  orgID,
		Name:            in.Name,
		TotalContacts:   totalContacts,
		NumSubCampaigns: (totalContacts + capacity - 1) / capacity,
		Status:          model.BatchCampaignStatusDraft,
	}
	if err := s.BatchCampaignRepo.Create(ctx, bc); err != nil {
		return nil, fmt.Errorf("create batch campaign: %w", err)
	}

	// Partition in resolution order, not caller-submitted order.
	plans := PartitionContacts(eligible, capacity, in.Name)

	result := &BatchCampaignResult{
		BatchCampaignID: bc.ID,
		TotalContacts:   totalContacts,
		NumSubCampaigns: len(plans),
	}

	jobIDs := []string{}
	for _, plan := range plans {
		campaign := &model.Campaign{
			BatchCampaignID: bc.ID,
			OrganizationID:  orgID,
			Name:            plan.Name,
			Ordinal:         plan.Ordinal,
			TemplateRef:     in.TemplateRef,
			ScheduleAt:      in.ScheduleAt,
			Status:          model.BatchCampaignStatusDraft,
		}
		if err := s.CampaignRepo.Create(ctx, campaign); err != nil {
			return nil, fmt.Errorf("create sub-campaign %d: %w", plan.Ordinal, err)
		}

		jobs := make([]model.MessageJob, 0, len(plan.Contacts))
		for _, contact := range plan.Contacts {
			payload, err := buildJobPayload(in, contact)
			if err != nil {
				return nil, fmt.Errorf("build payload for contact %s: %w", contact.ID, err)
			}
			jobs = append(jobs, model.MessageJob{
				CampaignID: campaign.ID,
				ContactID:  contact.ID,
				Payload:    payload,
				Status:     model.MessageJobStatusPending,
			})
		}
		if err := s.JobRepo.CreateMany(ctx, jobs); err != nil {
			return nil, fmt.Errorf("fan out jobs for sub-campaign %d: %w", plan.Ordinal, err)
		}
		for _, j := range jobs {
			jobIDs = append(jobIDs, j.ID)
		}

		result.SubCampaigns = append(result.SubCampaigns, SubCampaignSummary{
			ID:           campaign.ID,
			Name:         campaign.Name,
			Ordinal:      plan.Ordinal,
			ContactCount: len(plan.Contacts),
		})
	}

	if err := s.BatchCampaignRepo.UpdateStatus(ctx, bc.ID, model.BatchCampaignStatusScheduled); err != nil {
		return nil, fmt.Errorf("schedule batch campaign: %w", err)
	}
	result.Status = model.BatchCampaignStatusScheduled

	s.enqueueJobs(ctx, jobIDs)

	return result, nil
}

// enqueueJobs hands scheduled job IDs to the broker and marks the published
// ones QUEUED. Delivery is a separate worker's concern; a publish failure is
// logged and leaves that job PENDING without undoing the run.
func (s *BatchCampaignService) enqueueJobs(ctx context.Context, jobIDs []string) {
	if s.Queue == nil {
		return
	}
	published := make([]string, 0, len(jobIDs))
	for _, id := range jobIDs {
		if err := s.Queue.Publish(JobsTopic, map[string]string{"message_job_id": id}); err != nil {
			log.Println("⚠️ failed to enqueue message job", id, ":", err)
			continue
		}
		published = append(published, id)
	}
	if len(published) == 0 {
		return
	}
	if err := s.JobRepo.MarkQueued(ctx, published); err != nil {
		log.Println("⚠️ failed to mark queued jobs:", err)
	}
}

type jobTextContent struct {
	Body string `json:"body"`
}

type jobTemplateContent struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// jobPayload is the opaque structure the delivery worker interprets.
type jobPayload struct {
	Type     string              `json:"type"`
	Text     *jobTextContent     `json:"text,omitempty"`
	Template *jobTemplateContent `json:"template,omitempty"`
	MediaID  string              `json:"media_id,omitempty"`
}

func buildJobPayload(in CreateBatchCampaignInput, contact model.Contact) (string, error) {
	p := jobPayload{}
	if in.TemplateRef != nil && *in.TemplateRef != "" {
		p.Type = "template"
		p.Template = &jobTemplateContent{Name: *in.TemplateRef, Language: "en"}
	} else {
		name := ""
		if contact.Name != nil {
			name = *contact.Name
		}
		p.Type = "text"
		p.Text = &jobTextContent{Body: RenderTemplate(in.Message, map[string]string{"name": name})}
	}
	if in.MediaID != nil {
		p.MediaID = *in.MediaID
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BatchCampaignDetails is one batch campaign with its sub-campaigns and
// per-status job stats.
type BatchCampaignDetails struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Status          string               `json:"status"`
	TotalContacts   int                  `json:"total_contacts"`
	NumSubCampaigns int                  `json:"num_sub_campaigns"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       *time.Time           `json:"updated_at,omitempty"`
	SubCampaigns    []SubCampaignSummary `json:"sub_campaigns"`
	Stats           map[string]int       `json:"stats"`
}

// GetBatchCampaignDetails fetches a batch campaign with job counts per
// sub-campaign and per status.
func (s *BatchCampaignService) GetBatchCampaignDetails(ctx context.Context, orgID, id string) (*BatchCampaignDetails, error) {
	bc, err := s.BatchCampaignRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.CampaignRepo.ListByBatchCampaign(ctx, bc.ID)
	if err != nil {
		return nil, err
	}

	counts, err := s.JobRepo.CountsByCampaign(ctx, bc.ID)
	if err != nil {
		return nil, err
	}

	stats, err := s.JobRepo.StatsByBatchCampaign(ctx, bc.ID)
	if err != nil {
		return nil, err
	}

	details := &BatchCampaignDetails{
		ID:              bc.ID,
		Name:            bc.Name,
		Status:          bc.Status,
		TotalContacts:   bc.TotalContacts,
		NumSubCampaigns: bc.NumSubCampaigns,
		CreatedAt:       bc.CreatedAt,
		UpdatedAt:       bc.UpdatedAt,
		Stats:           stats,
	}
	for _, c := range campaigns {
		details.SubCampaigns = append(details.SubCampaigns, SubCampaignSummary{
			ID:           c.ID,
			Name:         c.Name,
			Ordinal:      c.Ordinal,
			ContactCount: counts[c.ID],
		})
	}
	return details, nil
}

// ListBatchCampaigns fetches batch campaigns with pagination
func (s *BatchCampaignService) ListBatchCampaigns(ctx context.Context, orgID string, page, pageSize int) ([]model.BatchCampaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.BatchCampaignRepo.List(ctx, orgID, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	batches := make([]model.BatchCampaign, len(ptrs))
	for i, bc := range ptrs {
		batches[i] = *bc
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return batches, pagination, nil
}
