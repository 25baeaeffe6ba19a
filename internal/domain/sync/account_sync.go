package sync

import (
	"context"
	"fmt"
	"log"

	"finmirror/internal/domain/account"
	"finmirror/internal/domain/customer"
	"finmirror/internal/infrastructure/provider"
)

// AccountSyncResult is the outcome of one per-customer account pass.
// AccountIDs holds only the ids that were actually persisted; membership and
// downstream transaction syncs work off this list, never the raw listing.
type AccountSyncResult struct {
	AccountIDs []string
	Balances   int
	Errors     []StepError
}

// AccountReconciler refreshes a customer's accounts and their balance
// snapshots. Only account kinds in the configured allow-set participate.
type AccountReconciler struct {
	client       provider.ClientInterface
	accounts     account.Repository
	customers    customer.Repository
	allowedKinds map[string]struct{}
}

// NewAccountReconciler creates a new account reconciler. kinds is the
// allow-set of account kinds to sync.
func NewAccountReconciler(client provider.ClientInterface, accounts account.Repository, customers customer.Repository, kinds []string) *AccountReconciler {
	allowed := make(map[string]struct{}, len(kinds))
	for _, kind := range kinds {
		allowed[kind] = struct{}{}
	}
	return &AccountReconciler{
		client:       client,
		accounts:     accounts,
		customers:    customers,
		allowedKinds: allowed,
	}
}

// SyncForCustomer fetches the customer's account listing, upserts the allowed
// accounts, replaces the customer's membership snapshot with the persisted
// set, and refreshes each persisted account's balance. A listing fetch
// failure fails the pass; per-account failures are contained.
func (r *AccountReconciler) SyncForCustomer(ctx context.Context, customerID string) (*AccountSyncResult, error) {
	listing, err := r.client.GetCustomerAccounts(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for customer %s: %w", customerID, err)
	}

	result := &AccountSyncResult{AccountIDs: []string{}, Errors: []StepError{}}

	for _, entry := range listing {
		if _, ok := r.allowedKinds[entry.Kind]; !ok {
			continue
		}

		_, err := r.accounts.Upsert(ctx, account.UpsertParams{
			ID:     entry.ID,
			Kind:   entry.Kind,
			Branch: entry.Branch,
			Number: entry.Number,
		})
		if err != nil {
			result.Errors = append(result.Errors, StepError{
				Step:      "accounts",
				AccountID: entry.ID,
				Error:     err.Error(),
			})
			continue
		}
		result.AccountIDs = append(result.AccountIDs, entry.ID)
	}

	if err := r.customers.ReplaceAccountIDs(ctx, customerID, result.AccountIDs); err != nil {
		result.Errors = append(result.Errors, StepError{
			Step:  "accounts",
			Error: fmt.Sprintf("failed to replace account membership for customer %s: %v", customerID, err),
		})
	}

	for _, accountID := range result.AccountIDs {
		if err := r.syncBalance(ctx, accountID); err != nil {
			result.Errors = append(result.Errors, StepError{
				Step:      "balances",
				AccountID: accountID,
				Error:     err.Error(),
			})
			continue
		}
		result.Balances++
	}

	log.Printf("Account sync for customer %s - Accounts: %d, Balances: %d, Errors: %d",
		customerID, len(result.AccountIDs), result.Balances, len(result.Errors))

	return result, nil
}

func (r *AccountReconciler) syncBalance(ctx context.Context, accountID string) error {
	snapshot, err := r.client.GetAccountBalance(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}
	if err := r.accounts.UpdateBalance(ctx, accountID, snapshot.Balance, snapshot.CreditLimit); err != nil {
		return fmt.Errorf("failed to store balance: %w", err)
	}
	return nil
}
