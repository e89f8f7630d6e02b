package repository

import (
	"context"
	"database/sql"
	"time"
)

type OrganizationRepositoryInterface interface {
	Upsert(ctx context.Context, id, name string) error
}

type OrganizationRepository struct {
	DB *sql.DB
}

// Upsert makes sure the organization row exists. An existing row is left
// untouched; imports never rename an organization.
func (r *OrganizationRepository) Upsert(ctx context.Context, id, name string) error {
	query := `
        INSERT INTO organizations (id, name, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.ExecContext(ctx, query, id, name, time.Now())
	return err
}

var _ OrganizationRepositoryInterface = (*OrganizationRepository)(nil)
