// internal/model/contact.go
package model

import "time"

// Contact lifecycle statuses
const (
	ContactStatusActive = "ACTIVE"
	ContactStatusOptedOut = "OPTED_OUT"
)

// Contact is one addressable recipient, unique per (organization, e164).
type Contact struct {
	ID             string     `db:"id" json:"id"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	E164           string     `db:"e164" json:"e164"`
	Name           *string    `db:"name" json:"name,omitempty"`
	Status         string     `db:"status" json:"status"`
	OptInAt        *time.Time `db:"opt_in_at" json:"opt_in_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
