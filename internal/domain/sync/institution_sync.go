package sync

import (
	"context"
	"fmt"
	"log"

	"finmirror/internal/domain/institution"
	"finmirror/internal/infrastructure/provider"
)

// InstitutionReconciler mirrors the provider's institution directory.
// It runs once per cycle, independent of consents.
type InstitutionReconciler struct {
	client provider.ClientInterface
	repo   institution.Repository
}

// NewInstitutionReconciler creates a new institution reconciler
func NewInstitutionReconciler(client provider.ClientInterface, repo institution.Repository) *InstitutionReconciler {
	return &InstitutionReconciler{client: client, repo: repo}
}

// SyncAll fetches the institution directory and upserts each entry by
// provider id. A directory fetch failure fails the whole pass; per-entry
// upsert failures are recorded and do not abort the batch.
func (r *InstitutionReconciler) SyncAll(ctx context.Context) (*InstitutionResult, error) {
	directory, err := r.client.GetInstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch institution directory: %w", err)
	}

	result := &InstitutionResult{Errors: []string{}}

	for _, entry := range directory {
		exists, err := r.repo.Exists(ctx, entry.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("institution %s: %v", entry.ID, err))
			continue
		}

		_, err = r.repo.Upsert(ctx, institution.UpsertParams{
			ID:          entry.ID,
			DisplayName: entry.Name,
			Active:      entry.Status,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("institution %s: %v", entry.ID, err))
			continue
		}

		if exists {
			result.Updated++
		} else {
			result.Created++
		}
	}

	log.Printf("Institution sync complete - Created: %d, Updated: %d, Errors: %d",
		result.Created, result.Updated, len(result.Errors))

	return result, nil
}
