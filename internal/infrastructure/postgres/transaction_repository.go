package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"finmirror/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, date, description, amount, direction, category, current_installment, total_installments, last_synced_at`

// Upsert creates or updates a transaction based on its provider id
func (r *TransactionRepository) Upsert(ctx context.Context, params transaction.UpsertParams) (*transaction.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (id, account_id, date, description, amount, direction, category, current_installment, total_installments, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			account_id = EXCLUDED.account_id,
			date = EXCLUDED.date,
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			direction = EXCLUDED.direction,
			category = EXCLUDED.category,
			current_installment = EXCLUDED.current_installment,
			total_installments = EXCLUDED.total_installments,
			last_synced_at = CURRENT_TIMESTAMP
		RETURNING ` + transactionColumns

	var currentIn, totalIn sql.NullInt64
	if params.CurrentInstallment != nil {
		currentIn.Int64 = int64(*params.CurrentInstallment)
		currentIn.Valid = true
	}
	if params.TotalInstallments != nil {
		totalIn.Int64 = int64(*params.TotalInstallments)
		totalIn.Valid = true
	}

	tx, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.AccountID, params.Date, params.Description,
		params.Amount, params.Direction, params.Category, currentIn, totalIn,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert transaction: %w", err)
	}
	return tx, nil
}

// ListByAccountIDs retrieves one page of transactions across the given
// accounts, newest first
func (r *TransactionRepository) ListByAccountIDs(ctx context.Context, accountIDs []string, page, limit int) (*transaction.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	result := &transaction.Page{Items: []*transaction.Transaction{}, Page: page, Limit: limit}
	if len(accountIDs) == 0 {
		return result, nil
	}

	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = ANY($1)`
	if err := r.db.QueryRowContext(ctx, countQuery, pq.Array(accountIDs)).Scan(&result.Total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	result.TotalPages = (result.Total + limit - 1) / limit

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = ANY($1)
		ORDER BY date DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(accountIDs), limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result.Items = append(result.Items, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return result, nil
}

// ListByAccountIDsBetween retrieves all transactions across the given
// accounts with dates inside [start, end]
func (r *TransactionRepository) ListByAccountIDsBetween(ctx context.Context, accountIDs []string, start, end time.Time) ([]*transaction.Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY date DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(accountIDs), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by period: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var currentInstallment, totalInstallments sql.NullInt64

	err := row.Scan(
		&tx.ID, &tx.AccountID, &tx.Date, &tx.Description, &tx.Amount,
		&tx.Direction, &tx.Category, &currentInstallment, &totalInstallments, &tx.LastSyncedAt,
	)
	if err != nil {
		return nil, err
	}

	if currentInstallment.Valid {
		v := int(currentInstallment.Int64)
		tx.CurrentInstallment = &v
	}
	if totalInstallments.Valid {
		v := int(totalInstallments.Int64)
		tx.TotalInstallments = &v
	}

	return &tx, nil
}
