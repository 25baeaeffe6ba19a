package customer

import "context"

// Repository defines the interface for customer data access
type Repository interface {
	// Upsert creates or updates a customer keyed by its provider id,
	// advancing lastSyncedAt. AccountIDs is untouched.
	Upsert(ctx context.Context, params UpsertParams) (*Customer, error)

	// GetByID retrieves a customer by its ID
	GetByID(ctx context.Context, id string) (*Customer, error)

	// GetByTaxID retrieves a customer by tax id
	GetByTaxID(ctx context.Context, taxID string) (*Customer, error)

	// ReplaceAccountIDs replaces the customer's account membership snapshot,
	// advancing lastSyncedAt
	ReplaceAccountIDs(ctx context.Context, customerID string, accountIDs []string) error
}
