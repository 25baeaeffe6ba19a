package institution

import "context"

// Repository defines the interface for institution data access
type Repository interface {
	// Upsert creates or updates an institution keyed by its provider id,
	// advancing lastSyncedAt
	Upsert(ctx context.Context, params UpsertParams) (*Institution, error)

	// Exists checks if an institution with the given ID exists
	Exists(ctx context.Context, id string) (bool, error)

	// List retrieves institutions, optionally restricted to active ones
	List(ctx context.Context, onlyActive bool) ([]*Institution, error)
}
