package sync

import (
	"context"
	"fmt"

	"finmirror/internal/domain/consent"
	"finmirror/internal/domain/customer"
	"finmirror/internal/infrastructure/provider"
)

// CustomerReconciler refreshes the customer profile behind a consent.
type CustomerReconciler struct {
	client provider.ClientInterface
	repo   customer.Repository
}

// NewCustomerReconciler creates a new customer reconciler
func NewCustomerReconciler(client provider.ClientInterface, repo customer.Repository) *CustomerReconciler {
	return &CustomerReconciler{client: client, repo: repo}
}

// SyncByConsent fetches the consent's customer profile and upserts it linked
// to the consent's owner. The returned record carries the locally known
// account membership, which downstream steps may need when the consent lacks
// the accounts capability.
func (r *CustomerReconciler) SyncByConsent(ctx context.Context, c *consent.Consent) (*customer.Customer, error) {
	if !c.HasOwner() {
		return nil, consent.ErrOwnerMissing
	}

	profile, err := r.client.GetCustomer(ctx, c.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer %s: %w", c.CustomerID, err)
	}

	record, err := r.repo.Upsert(ctx, customer.UpsertParams{
		ID:          profile.ID,
		OwnerUserID: *c.OwnerUserID,
		Name:        profile.Name,
		TaxID:       profile.TaxID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer %s: %w", profile.ID, err)
	}

	return record, nil
}
