package postgres

import (
	"context"
	"fmt"

	"finmirror/internal/domain/institution"
)

// InstitutionRepository implements the institution.Repository interface for PostgreSQL
type InstitutionRepository struct {
	db *DB
}

// NewInstitutionRepository creates a new PostgreSQL institution repository
func NewInstitutionRepository(db *DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

// Upsert creates or updates an institution based on its provider id
func (r *InstitutionRepository) Upsert(ctx context.Context, params institution.UpsertParams) (*institution.Institution, error) {
	query := `
		INSERT INTO institutions (id, display_name, active, last_synced_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			active = EXCLUDED.active,
			last_synced_at = CURRENT_TIMESTAMP
		RETURNING id, display_name, active, last_synced_at
	`

	var inst institution.Institution
	err := r.db.QueryRowContext(ctx, query, params.ID, params.DisplayName, params.Active).Scan(
		&inst.ID, &inst.DisplayName, &inst.Active, &inst.LastSyncedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert institution: %w", err)
	}

	return &inst, nil
}

// Exists checks if an institution with the given ID exists
func (r *InstitutionRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM institutions WHERE id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check institution existence: %w", err)
	}

	return exists, nil
}

// List retrieves institutions, optionally restricted to active ones
func (r *InstitutionRepository) List(ctx context.Context, onlyActive bool) ([]*institution.Institution, error) {
	query := `
		SELECT id, display_name, active, last_synced_at
		FROM institutions
		WHERE ($1 = false OR active = true)
		ORDER BY display_name
	`

	rows, err := r.db.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*institution.Institution
	for rows.Next() {
		var inst institution.Institution
		if err := rows.Scan(&inst.ID, &inst.DisplayName, &inst.Active, &inst.LastSyncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, &inst)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating institutions: %w", err)
	}

	return institutions, nil
}
