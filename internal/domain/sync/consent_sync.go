package sync

import (
	"context"
	"fmt"
	"log"
	"sync"

	"finmirror/internal/domain/consent"
	"finmirror/internal/infrastructure/provider"
)

// ConsentReconciler mirrors the provider's consent list and infers
// revocations from absence: a locally active consent missing from the
// provider's listing is marked revoked.
type ConsentReconciler struct {
	client provider.ClientInterface
	repo   consent.Repository
}

// NewConsentReconciler creates a new consent reconciler
func NewConsentReconciler(client provider.ClientInterface, repo consent.Repository) *ConsentReconciler {
	return &ConsentReconciler{client: client, repo: repo}
}

// SyncAll refreshes every consent the provider reports and revokes the
// locally active ones it no longer does. A listing fetch failure aborts the
// whole pass before any revocation runs: an unreachable provider must never
// look like a mass revocation.
func (r *ConsentReconciler) SyncAll(ctx context.Context) (*ConsentResult, error) {
	listing, err := r.client.GetConsents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consent listing: %w", err)
	}

	result := &ConsentResult{Errors: []string{}}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, entry := range listing {
		wg.Add(1)
		go func(entry provider.Consent) {
			defer wg.Done()

			created, err := r.upsertFromProvider(ctx, entry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("consent %s: %v", entry.ID, err))
				return
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}(entry)
	}
	wg.Wait()

	r.revokeMissing(ctx, listing, result)

	log.Printf("Consent sync complete - Created: %d, Updated: %d, Revoked: %d, Errors: %d",
		result.Created, result.Updated, result.Revoked, len(result.Errors))

	return result, nil
}

// SyncOne refreshes a single consent by id. A provider 403 or 404 means the
// consent is gone on the provider side and is marked revoked locally.
func (r *ConsentReconciler) SyncOne(ctx context.Context, id string) (*consent.Consent, error) {
	entry, err := r.client.GetConsent(ctx, id)
	if err != nil {
		if status, ok := provider.HTTPStatus(err); ok && (status == 403 || status == 404) {
			if revokeErr := r.repo.MarkRevoked(ctx, id); revokeErr != nil {
				return nil, fmt.Errorf("failed to revoke consent %s: %w", id, revokeErr)
			}
			log.Printf("Consent %s no longer visible at provider (status %d), marked revoked", id, status)
			return r.repo.GetByID(ctx, id)
		}
		return nil, fmt.Errorf("failed to fetch consent %s: %w", id, err)
	}

	if _, err := r.upsertFromProvider(ctx, *entry); err != nil {
		return nil, err
	}
	return r.repo.GetByID(ctx, id)
}

func (r *ConsentReconciler) upsertFromProvider(ctx context.Context, entry provider.Consent) (created bool, err error) {
	exists, err := r.repo.Exists(ctx, entry.ID)
	if err != nil {
		return false, err
	}

	_, err = r.repo.Upsert(ctx, consent.UpsertParams{
		ID:            entry.ID,
		InstitutionID: entry.InstitutionID,
		CustomerID:    entry.CustomerID,
		ClientAppID:   entry.ClientAppID,
		Permissions:   entry.Permissions,
		Status:        consent.StatusActive,
		CreatedAt:     entry.CreatedAt,
		ExpiresAt:     entry.ExpiresAt,
	})
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// revokeMissing diffs locally active consents against the provider listing
// and marks the absent ones revoked. Only reached after a successful fetch.
func (r *ConsentReconciler) revokeMissing(ctx context.Context, listing []provider.Consent, result *ConsentResult) {
	localActive, err := r.repo.ListActiveIDs(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to list active consents: %v", err))
		return
	}

	providerIDs := make([]string, 0, len(listing))
	for _, entry := range listing {
		providerIDs = append(providerIDs, entry.ID)
	}

	for _, id := range consent.RevokedIDs(localActive, providerIDs) {
		if err := r.repo.MarkRevoked(ctx, id); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("consent %s: failed to revoke: %v", id, err))
			continue
		}
		result.Revoked++
		result.RevokedIDs = append(result.RevokedIDs, id)
		log.Printf("Consent %s absent from provider listing, marked revoked", id)
	}
}
