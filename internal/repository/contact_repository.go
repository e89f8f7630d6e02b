package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/unclebandit/wabablast-backend/internal/model"
)

// ContactRepositoryInterface defines the contact lookups and writes the
// import and campaign services need.
type ContactRepositoryInterface interface {
	FindByPhones(ctx context.Context, orgID string, phones []string) ([]model.Contact, error)
	FindEligibleByIDs(ctx context.Context, orgID string, ids []string) ([]model.Contact, error)
	CreateMany(ctx context.Context, contacts []model.Contact) (int, error)
}

// ContactRepository is the concrete implementation
type ContactRepository struct {
	DB *sql.DB
}

// FindByPhones fetches the organization's contacts whose canonical phone is
// in the given set.
func (r *ContactRepository) FindByPhones(ctx context.Context, orgID string, phones []string) ([]model.Contact, error) {
	if len(phones) == 0 {
		return []model.Contact{}, nil
	}

	query := `
        SELECT id, organization_id, e164, name, status, opt_in_at, created_at
        FROM contacts
        WHERE organization_id = $1 AND e164 = ANY($2)
    `
	rows, err := r.DB.QueryContext(ctx, query, orgID, pq.Array(phones))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// FindEligibleByIDs resolves contact IDs against the organization's contact
// set, keeping only opted-in ACTIVE contacts. The returned order (creation
// order) is the resolution order used for partitioning.
func (r *ContactRepository) FindEligibleByIDs(ctx context.Context, orgID string, ids []string) ([]model.Contact, error) {
	if len(ids) == 0 {
		return []model.Contact{}, nil
	}

	query := `
        SELECT id, organization_id, e164, name, status, opt_in_at, created_at
        FROM contacts
        WHERE organization_id = $1
          AND id = ANY($2)
          AND opt_in_at IS NOT NULL
          AND status = 'ACTIVE'
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, orgID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ContactInsertChunk bounds the rows per INSERT. At 7 bind parameters per
// contact, a chunk stays well under Postgres's 65535-parameter statement
// limit, which a large import would otherwise hit.
const ContactInsertChunk = 5000

// CreateMany inserts new contacts in chunked multi-row statements, idempotent
// on (organization_id, e164): a retry after partial failure never creates a
// second contact for the same canonical phone. Returns the number of rows
// actually inserted.
func (r *ContactRepository) CreateMany(ctx context.Context, contacts []model.Contact) (int, error) {
	inserted := 0
	for start := 0; start < len(contacts); start += ContactInsertChunk {
		end := start + ContactInsertChunk
		if end > len(contacts) {
			end = len(contacts)
		}
		n, err := r.insertChunk(ctx, contacts[start:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (r *ContactRepository) insertChunk(ctx context.Context, contacts []model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	query := `INSERT INTO contacts (id, organization_id, e164, name, status, opt_in_at, created_at) VALUES `
	args := []interface{}{}
	argPos := 1

	now := time.Now()
	for i := range contacts {
		c := &contacts[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argPos, argPos+1, argPos+2, argPos+3, argPos+4, argPos+5, argPos+6)
		args = append(args, c.ID, c.OrganizationID, c.E164, c.Name, c.Status, c.OptInAt, c.CreatedAt)
		argPos += 7
	}
	query += ` ON CONFLICT (organization_id, e164) DO NOTHING`

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

func scanContacts(rows *sql.Rows) ([]model.Contact, error) {
	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.E164, &c.Name, &c.Status, &c.OptInAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
