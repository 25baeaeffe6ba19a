package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"finmirror/internal/domain/account"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, kind, branch, number, balance, credit_limit, transaction_ids, last_synced_at`

// Upsert creates or updates an account based on its provider id. Balance and
// credit limit are written by UpdateBalance; the transaction membership
// snapshot by ReplaceTransactionIDs.
func (r *AccountRepository) Upsert(ctx context.Context, params account.UpsertParams) (*account.Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO accounts (id, kind, branch, number, balance, transaction_ids, last_synced_at)
		VALUES ($1, $2, $3, $4, 0, '{}', CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			kind = EXCLUDED.kind,
			branch = EXCLUDED.branch,
			number = EXCLUDED.number,
			last_synced_at = CURRENT_TIMESTAMP
		RETURNING ` + accountColumns

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, params.ID, params.Kind, params.Branch, params.Number))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return acc, nil
}

// Exists checks if an account with the given ID exists
func (r *AccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// ListByIDs retrieves the accounts with the given ids
func (r *AccountRepository) ListByIDs(ctx context.Context, ids []string) ([]*account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// UpdateBalance writes the balance snapshot for an account
func (r *AccountRepository) UpdateBalance(ctx context.Context, id string, balance float64, creditLimit *float64) error {
	query := `UPDATE accounts SET balance = $1, credit_limit = $2, last_synced_at = CURRENT_TIMESTAMP WHERE id = $3`

	var limit sql.NullFloat64
	if creditLimit != nil {
		limit.Float64 = *creditLimit
		limit.Valid = true
	}

	result, err := r.db.ExecContext(ctx, query, balance, limit, id)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// ReplaceTransactionIDs replaces the account's transaction membership snapshot
func (r *AccountRepository) ReplaceTransactionIDs(ctx context.Context, accountID string, transactionIDs []string) error {
	query := `UPDATE accounts SET transaction_ids = $1, last_synced_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, pq.Array(transactionIDs), accountID)
	if err != nil {
		return fmt.Errorf("failed to replace transaction ids: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row rowScanner) (*account.Account, error) {
	var acc account.Account
	var creditLimit sql.NullFloat64
	var transactionIDs pq.StringArray

	err := row.Scan(
		&acc.ID, &acc.Kind, &acc.Branch, &acc.Number,
		&acc.Balance, &creditLimit, &transactionIDs, &acc.LastSyncedAt,
	)
	if err != nil {
		return nil, err
	}

	if creditLimit.Valid {
		acc.CreditLimit = &creditLimit.Float64
	}
	acc.TransactionIDs = []string(transactionIDs)

	return &acc, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
