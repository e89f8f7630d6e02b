// internal/model/import_batch.go
package model

import "time"

const ImportBatchStatusCompleted = "COMPLETED"

// ImportBatch is a write-once summary of one import attempt.
type ImportBatch struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	Filename       string    `db:"filename" json:"filename"`
	TotalRows      int       `db:"total_rows" json:"total_rows"`
	ValidRows      int       `db:"valid_rows" json:"valid_rows"`
	InvalidRows    int       `db:"invalid_rows" json:"invalid_rows"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
