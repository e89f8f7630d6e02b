// internal/errors/errors.go
package appErrors

import "fmt"

// ErrColumnNotFound means a required column name did not match any header.
// It aborts the whole validation call; no partial report is produced.
type ErrColumnNotFound struct {
	Column string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column %q not found in headers", e.Column)
}

func NewColumnNotFound(column string) error {
	return &ErrColumnNotFound{Column: column}
}

// ErrNoEligibleContacts means none of the requested contacts resolved as
// opted-in and ACTIVE.
type ErrNoEligibleContacts struct{}

func (e *ErrNoEligibleContacts) Error() string {
	return "no valid opted-in contacts found"
}

func NewNoEligibleContacts() error {
	return &ErrNoEligibleContacts{}
}

// ErrPartialEligibility means some requested contacts were not eligible.
// Intake is all-or-nothing, so nothing is created.
type ErrPartialEligibility struct {
	Eligible  int
	Requested int
}

func (e *ErrPartialEligibility) Error() string {
	return fmt.Sprintf("only %d out of %d contacts are valid and opted-in", e.Eligible, e.Requested)
}

func NewPartialEligibility(eligible, requested int) error {
	return &ErrPartialEligibility{Eligible: eligible, Requested: requested}
}

// ErrBatchCampaignNotFound is a sentinel error
type ErrBatchCampaignNotFound struct {
	BatchCampaignID string
}

func (e *ErrBatchCampaignNotFound) Error() string {
	return fmt.Sprintf("batch campaign with ID %s not found", e.BatchCampaignID)
}

func NewBatchCampaignNotFound(id string) error {
	return &ErrBatchCampaignNotFound{BatchCampaignID: id}
}

// ErrUnsupportedFormat means the uploaded file is neither CSV nor Excel.
type ErrUnsupportedFormat struct {
	Filename string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Filename)
}

func NewUnsupportedFormat(filename string) error {
	return &ErrUnsupportedFormat{Filename: filename}
}

// ErrEmptyFile means the uploaded file had no rows at all.
type ErrEmptyFile struct{}

func (e *ErrEmptyFile) Error() string {
	return "file is empty"
}

func NewEmptyFile() error {
	return &ErrEmptyFile{}
}
