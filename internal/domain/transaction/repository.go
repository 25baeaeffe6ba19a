package transaction

import (
	"context"
	"time"
)

// Repository defines the interface for transaction data access
type Repository interface {
	// Upsert creates or updates a transaction keyed by its provider id,
	// advancing lastSyncedAt
	Upsert(ctx context.Context, params UpsertParams) (*Transaction, error)

	// ListByAccountIDs retrieves one page of transactions across the given
	// accounts, newest first
	ListByAccountIDs(ctx context.Context, accountIDs []string, page, limit int) (*Page, error)

	// ListByAccountIDsBetween retrieves all transactions across the given
	// accounts with dates inside [start, end]
	ListByAccountIDsBetween(ctx context.Context, accountIDs []string, start, end time.Time) ([]*Transaction, error)
}
