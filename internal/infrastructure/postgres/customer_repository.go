package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"finmirror/internal/domain/customer"
)

// CustomerRepository implements the customer.Repository interface for PostgreSQL
type CustomerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Upsert creates or updates a customer based on its provider id. The account
// membership snapshot is owned by ReplaceAccountIDs and never touched here.
func (r *CustomerRepository) Upsert(ctx context.Context, params customer.UpsertParams) (*customer.Customer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO customers (id, owner_user_id, name, tax_id, account_ids, last_synced_at)
		VALUES ($1, $2, $3, $4, '{}', CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			owner_user_id = EXCLUDED.owner_user_id,
			name = EXCLUDED.name,
			tax_id = EXCLUDED.tax_id,
			last_synced_at = CURRENT_TIMESTAMP
		RETURNING id, owner_user_id, name, tax_id, account_ids, last_synced_at
	`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, params.ID, params.OwnerUserID, params.Name, params.TaxID))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}
	return c, nil
}

// GetByID retrieves a customer by its ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT id, owner_user_id, name, tax_id, account_ids, last_synced_at FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// GetByTaxID retrieves a customer by tax id
func (r *CustomerRepository) GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	query := `SELECT id, owner_user_id, name, tax_id, account_ids, last_synced_at FROM customers WHERE tax_id = $1`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, taxID))
	if err == sql.ErrNoRows {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by tax id: %w", err)
	}
	return c, nil
}

// ReplaceAccountIDs replaces the customer's account membership snapshot
func (r *CustomerRepository) ReplaceAccountIDs(ctx context.Context, customerID string, accountIDs []string) error {
	query := `UPDATE customers SET account_ids = $1, last_synced_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, pq.Array(accountIDs), customerID)
	if err != nil {
		return fmt.Errorf("failed to replace account ids: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var c customer.Customer
	var accountIDs pq.StringArray

	err := row.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.TaxID, &accountIDs, &c.LastSyncedAt)
	if err != nil {
		return nil, err
	}

	c.AccountIDs = []string(accountIDs)
	return &c, nil
}
