// internal/service/importer.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/unclebandit/wabablast-backend/internal/model"
	"github.com/unclebandit/wabablast-backend/internal/repository"
)

// ImportResult is the unified summary a caller presents: persistence-stage
// counts plus the validation-stage counts that produced the candidates.
type ImportResult struct {
	ImportBatchID     string
	TotalRows         int
	ValidContacts     int
	InvalidContacts   int
	DuplicateContacts int
	NewContacts       int
	ExistingContacts  int
}

// ImportService persists validated candidates as canonical contacts,
// reconciling against contacts the organization already knows.
type ImportService struct {
	ContactRepo     repository.ContactRepositoryInterface
	ImportBatchRepo repository.ImportBatchRepositoryInterface
	OrgRepo         repository.OrganizationRepositoryInterface
}

// ImportContacts creates the not-yet-known candidates with ACTIVE status and
// opt-in set to the processing time, then records one ImportBatch summary.
// Existing contacts are never re-created or updated. The contact insert is
// idempotent on (organization, e164), so a retried call yields no extra rows.
func (s *ImportService) ImportContacts(ctx context.Context, orgID, filename string, report *ValidationReport) (*ImportResult, error) {
	if err := s.OrgRepo.Upsert(ctx, orgID, orgID); err != nil {
		return nil, fmt.Errorf("ensure organization: %w", err)
	}

	// The validator already dedups, but don't assume it.
	candidates := dedupCandidates(report.Candidates)

	phones := make([]string, len(candidates))
	for i, c := range candidates {
		phones[i] = c.E164
	}

	existing, err := s.ContactRepo.FindByPhones(ctx, orgID, phones)
	if err != nil {
		return nil, fmt.Errorf("lookup existing contacts: %w", err)
	}
	existingSet := map[string]bool{}
	for _, c := range existing {
		existingSet[c.E164] = true
	}

	now := time.Now()
	newContacts := []model.Contact{}
	for _, c := range candidates {
		if existingSet[c.E164] {
			continue
		}
		optIn := now
		newContacts = append(newContacts, model.Contact{
			OrganizationID: orgID,
			E164:           c.E164,
			Name:           c.Name,
			Status:         model.ContactStatusActive,
			OptInAt:        &optIn,
		})
	}

	inserted := 0
	if len(newContacts) > 0 {
		inserted, err = s.ContactRepo.CreateMany(ctx, newContacts)
		if err != nil {
			return nil, fmt.Errorf("create contacts: %w", err)
		}
	}

	if filename == "" {
		filename = fmt.Sprintf("import_%d.csv", now.UnixMilli())
	}
	batch := &model.ImportBatch{
		OrganizationID: orgID,
		Filename:       filename,
		TotalRows:      report.TotalRows,
		ValidRows:      report.ValidContacts,
		InvalidRows:    report.InvalidContacts,
		Status:         model.ImportBatchStatusCompleted,
	}
	if err := s.ImportBatchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("record import batch: %w", err)
	}

	return &ImportResult{
		ImportBatchID:     batch.ID,
		TotalRows:         report.TotalRows,
		ValidContacts:     report.ValidContacts,
		InvalidContacts:   report.InvalidContacts,
		DuplicateContacts: report.DuplicateContacts,
		NewContacts:       inserted,
		ExistingContacts:  len(candidates) - inserted,
	}, nil
}

// dedupCandidates keeps the first occurrence per canonical phone.
func dedupCandidates(candidates []CandidateContact) []CandidateContact {
	seen := map[string]bool{}
	out := make([]CandidateContact, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.E164] {
			continue
		}
		seen[c.E164] = true
		out = append(out, c)
	}
	return out
}
