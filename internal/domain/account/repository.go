package account

import "context"

// Repository defines the interface for account data access
type Repository interface {
	// Upsert creates or updates an account keyed by its provider id,
	// advancing lastSyncedAt. Balance and credit limit are untouched.
	Upsert(ctx context.Context, params UpsertParams) (*Account, error)

	// Exists checks if an account with the given ID exists
	Exists(ctx context.Context, id string) (bool, error)

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id string) (*Account, error)

	// ListByIDs retrieves the accounts with the given ids
	ListByIDs(ctx context.Context, ids []string) ([]*Account, error)

	// UpdateBalance writes the balance snapshot for an account,
	// advancing lastSyncedAt. creditLimit may be nil for non-card accounts.
	UpdateBalance(ctx context.Context, id string, balance float64, creditLimit *float64) error

	// ReplaceTransactionIDs replaces the account's transaction membership
	// snapshot, advancing lastSyncedAt
	ReplaceTransactionIDs(ctx context.Context, accountID string, transactionIDs []string) error
}
