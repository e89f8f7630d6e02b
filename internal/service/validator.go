// internal/service/validator.go
package service

import (
	"fmt"
	"strings"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/phone"
	"github.com/unclebandit/wabablast-backend/internal/tabular"
)

// DisplayedErrorLimit bounds how many row diagnostics a caller-facing
// response carries; the true total is always reported alongside.
const DisplayedErrorLimit = 10

// CandidateContact is one surviving (canonical phone, name) pair in row
// order. Name is the value from the first row that claimed the number.
type CandidateContact struct {
	E164 string
	Name *string
}

// ValidationReport is the immutable result of one pass over the input rows.
type ValidationReport struct {
	TotalRows         int
	ValidContacts     int
	InvalidContacts   int
	DuplicateContacts int
	Errors            []string
	Candidates        []CandidateContact
}

// DisplayErrors returns the bounded diagnostic prefix for user-facing output.
func (r *ValidationReport) DisplayErrors() []string {
	if len(r.Errors) <= DisplayedErrorLimit {
		return r.Errors
	}
	return r.Errors[:DisplayedErrorLimit]
}

// RowValidator classifies tabular rows as valid, invalid, or duplicate,
// normalizing phone cells to E.164 along the way.
type RowValidator struct {
	RegionHints []string
}

func NewRowValidator() *RowValidator {
	return &RowValidator{RegionHints: phone.DefaultRegionHints}
}

// Validate processes rows strictly in input order. Human-facing row numbers
// are 1-based and offset past the header row (index + 2). A missing phone
// column fails the whole call; a missing name column just skips name
// extraction. Row-level problems never abort the pass.
func (v *RowValidator) Validate(table *tabular.Table, phoneColumn, nameColumn string) (*ValidationReport, error) {
	phoneIdx := table.ColumnIndex(phoneColumn)
	if phoneIdx == -1 {
		return nil, appErrors.NewColumnNotFound(phoneColumn)
	}

	nameIdx := -1
	if nameColumn != "" {
		nameIdx = table.ColumnIndex(nameColumn)
	}

	report := &ValidationReport{TotalRows: len(table.Rows)}
	seen := map[string]bool{}

	for i, row := range table.Rows {
		rowNum := i + 2

		if phoneIdx >= len(row) || row[phoneIdx].IsBlank() {
			report.InvalidContacts++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: Empty phone number", rowNum))
			continue
		}

		raw := strings.TrimSpace(row[phoneIdx].String())
		e164, err := phone.Normalize(raw, v.RegionHints)
		if err != nil {
			report.InvalidContacts++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: Invalid phone number format: %s", rowNum, raw))
			continue
		}

		if seen[e164] {
			report.DuplicateContacts++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: Duplicate phone number: %s", rowNum, e164))
			continue
		}

		seen[e164] = true
		report.ValidContacts++
		report.Candidates = append(report.Candidates, CandidateContact{
			E164: e164,
			Name: extractName(row, nameIdx),
		})
	}

	return report, nil
}

func extractName(row []tabular.Cell, nameIdx int) *string {
	if nameIdx < 0 || nameIdx >= len(row) || row[nameIdx].IsBlank() {
		return nil
	}
	name := strings.TrimSpace(row[nameIdx].String())
	return &name
}
