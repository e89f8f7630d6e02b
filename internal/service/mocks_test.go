package service_test

import (
	"context"
	"fmt"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

// --- Mock Repositories ---

// MockContactRepo keeps contacts in insertion order so eligibility
// resolution order is deterministic, like the real query's creation order.
type MockContactRepo struct {
	contacts        []model.Contact
	createManyErr   error
	createManyCalls int
}

func (m *MockContactRepo) add(c model.Contact) {
	m.contacts = append(m.contacts, c)
}

func (m *MockContactRepo) FindByPhones(ctx context.Context, orgID string, phones []string) ([]model.Contact, error) {
	want := map[string]bool{}
	for _, p := range phones {
		want[p] = true
	}
	found := []model.Contact{}
	for _, c := range m.contacts {
		if c.OrganizationID == orgID && want[c.E164] {
			found = append(found, c)
		}
	}
	return found, nil
}

func (m *MockContactRepo) FindEligibleByIDs(ctx context.Context, orgID string, ids []string) ([]model.Contact, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	found := []model.Contact{}
	for _, c := range m.contacts {
		if c.OrganizationID != orgID || !want[c.ID] {
			continue
		}
		if c.OptInAt == nil || c.Status != model.ContactStatusActive {
			continue
		}
		found = append(found, c)
	}
	return found, nil
}

func (m *MockContactRepo) CreateMany(ctx context.Context, contacts []model.Contact) (int, error) {
	m.createManyCalls++
	if m.createManyErr != nil {
		return 0, m.createManyErr
	}
	existing := map[string]bool{}
	for _, c := range m.contacts {
		existing[c.OrganizationID+"|"+c.E164] = true
	}
	inserted := 0
	for _, c := range contacts {
		key := c.OrganizationID + "|" + c.E164
		if existing[key] {
			continue
		}
		existing[key] = true
		if c.ID == "" {
			c.ID = fmt.Sprintf("mock-contact-%d", len(m.contacts))
		}
		m.contacts = append(m.contacts, c)
		inserted++
	}
	return inserted, nil
}

type MockImportBatchRepo struct {
	batches   []*model.ImportBatch
	createErr error
}

func (m *MockImportBatchRepo) Create(ctx context.Context, batch *model.ImportBatch) error {
	if m.createErr != nil {
		return m.createErr
	}
	if batch.ID == "" {
		batch.ID = fmt.Sprintf("mock-import-batch-%d", len(m.batches)+1)
	}
	m.batches = append(m.batches, batch)
	return nil
}

type MockOrgRepo struct {
	upserted []string
}

func (m *MockOrgRepo) Upsert(ctx context.Context, id, name string) error {
	m.upserted = append(m.upserted, id)
	return nil
}

type MockBatchCampaignRepo struct {
	created   []*model.BatchCampaign
	statuses  map[string]string
	createErr error
	statusErr error
}

func (m *MockBatchCampaignRepo) Create(ctx context.Context, bc *model.BatchCampaign) error {
	if m.createErr != nil {
		return m.createErr
	}
	if bc.ID == "" {
		bc.ID = fmt.Sprintf("mock-batch-%d", len(m.created)+1)
	}
	m.created = append(m.created, bc)
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[bc.ID] = bc.Status
	return nil
}

func (m *MockBatchCampaignRepo) GetByID(ctx context.Context, orgID, id string) (*model.BatchCampaign, error) {
	for _, bc := range m.created {
		if bc.ID == id && bc.OrganizationID == orgID {
			out := *bc
			out.Status = m.statuses[id]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("batch campaign %s not found", id)
}

func (m *MockBatchCampaignRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.statuses[id] = status
	return nil
}

func (m *MockBatchCampaignRepo) List(ctx context.Context, orgID string, offset, limit int) ([]*model.BatchCampaign, int, error) {
	all := []*model.BatchCampaign{}
	for _, bc := range m.created {
		if bc.OrganizationID == orgID {
			all = append(all, bc)
		}
	}
	total := len(all)
	if offset >= total {
		return []*model.BatchCampaign{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type MockCampaignRepo struct {
	created   []*model.Campaign
	createErr error
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	if m.createErr != nil {
		return m.createErr
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("mock-campaign-%d", len(m.created)+1)
	}
	m.created = append(m.created, c)
	return nil
}

func (m *MockCampaignRepo) ListByBatchCampaign(ctx context.Context, batchCampaignID string) ([]*model.Campaign, error) {
	out := []*model.Campaign{}
	for _, c := range m.created {
		if c.BatchCampaignID == batchCampaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockJobRepo can be told to fail on the Nth CreateMany call to simulate a
// mid-fan-out persistence failure.
type MockJobRepo struct {
	jobs       []model.MessageJob
	calls      int
	failOnCall int
}

func (m *MockJobRepo) CreateMany(ctx context.Context, jobs []model.MessageJob) error {
	m.calls++
	if m.failOnCall > 0 && m.calls == m.failOnCall {
		return fmt.Errorf("simulated insert failure")
	}
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = fmt.Sprintf("mock-job-%d", len(m.jobs)+i+1)
		}
	}
	m.jobs = append(m.jobs, jobs...)
	return nil
}

func (m *MockJobRepo) MarkQueued(ctx context.Context, ids []string) error {
	queued := map[string]bool{}
	for _, id := range ids {
		queued[id] = true
	}
	for i := range m.jobs {
		if queued[m.jobs[i].ID] {
			m.jobs[i].Status = model.MessageJobStatusQueued
		}
	}
	return nil
}

func (m *MockJobRepo) CountsByCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error) {
	counts := map[string]int{}
	for _, j := range m.jobs {
		counts[j.CampaignID]++
	}
	return counts, nil
}

func (m *MockJobRepo) StatsByBatchCampaign(ctx context.Context, batchCampaignID string) (map[string]int, error) {
	stats := map[string]int{"total": 0}
	for _, j := range m.jobs {
		stats[j.Status]++
		stats["total"]++
	}
	return stats, nil
}

// MockQueue records publishes; a non-nil publishErr makes every publish fail.
type MockQueue struct {
	published  []any
	publishErr error
}

func (m *MockQueue) Publish(topic string, payload any) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, payload)
	return nil
}
