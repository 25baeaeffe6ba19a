package sync

import (
	"context"
	"fmt"
	"log"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/transaction"
	"finmirror/internal/infrastructure/provider"
)

// TransactionSyncResult is the outcome of one per-account ledger pass.
type TransactionSyncResult struct {
	TransactionIDs []string
	Errors         []StepError
}

// TransactionReconciler refreshes an account's transaction ledger.
type TransactionReconciler struct {
	client       provider.ClientInterface
	transactions transaction.Repository
	accounts     account.Repository
}

// NewTransactionReconciler creates a new transaction reconciler
func NewTransactionReconciler(client provider.ClientInterface, transactions transaction.Repository, accounts account.Repository) *TransactionReconciler {
	return &TransactionReconciler{
		client:       client,
		transactions: transactions,
		accounts:     accounts,
	}
}

// SyncForAccount fetches the account's full ledger, upserts each entry, and
// replaces the account's transaction membership snapshot with the persisted
// set. A ledger fetch failure fails the pass; per-entry failures are
// contained and excluded from the snapshot.
func (r *TransactionReconciler) SyncForAccount(ctx context.Context, accountID string) (*TransactionSyncResult, error) {
	ledger, err := r.client.GetAccountTransactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}

	result := &TransactionSyncResult{TransactionIDs: []string{}, Errors: []StepError{}}

	for _, entry := range ledger {
		_, err := r.transactions.Upsert(ctx, transaction.UpsertParams{
			ID:                 entry.ID,
			AccountID:          accountID,
			Date:               entry.Date,
			Description:        entry.Description,
			Amount:             entry.Amount,
			Direction:          entry.Direction,
			Category:           entry.Category,
			CurrentInstallment: entry.CurrentInstallment,
			TotalInstallments:  entry.TotalInstallments,
		})
		if err != nil {
			result.Errors = append(result.Errors, StepError{
				Step:      "transactions",
				AccountID: accountID,
				Error:     fmt.Sprintf("transaction %s: %v", entry.ID, err),
			})
			continue
		}
		result.TransactionIDs = append(result.TransactionIDs, entry.ID)
	}

	if err := r.accounts.ReplaceTransactionIDs(ctx, accountID, result.TransactionIDs); err != nil {
		result.Errors = append(result.Errors, StepError{
			Step:      "transactions",
			AccountID: accountID,
			Error:     fmt.Sprintf("failed to replace transaction membership: %v", err),
		})
	}

	log.Printf("Transaction sync for account %s - Transactions: %d, Errors: %d",
		accountID, len(result.TransactionIDs), len(result.Errors))

	return result, nil
}
