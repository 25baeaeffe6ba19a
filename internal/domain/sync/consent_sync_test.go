package sync

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"finmirror/internal/domain/consent"
	"finmirror/internal/infrastructure/provider"
)

func TestConsentSyncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Revokes locally active consents absent from provider", func(t *testing.T) {
		client := &MockClient{
			GetConsentsFunc: func(ctx context.Context) ([]provider.Consent, error) {
				return []provider.Consent{
					{ID: "c1", CustomerID: "cust1", Permissions: []string{"ACCOUNTS_READ"}},
				}, nil
			},
		}

		var mu sync.Mutex
		var revoked []string
		repo := &MockConsentRepo{
			ListActiveIDsFunc: func(ctx context.Context) ([]string, error) {
				return []string{"c1", "c2", "c3"}, nil
			},
			MarkRevokedFunc: func(ctx context.Context, id string) error {
				mu.Lock()
				defer mu.Unlock()
				revoked = append(revoked, id)
				return nil
			},
		}

		got, err := NewConsentReconciler(client, repo).SyncAll(ctx)
		if err != nil {
			t.Fatalf("SyncAll() unexpected error: %v", err)
		}

		sort.Strings(revoked)
		if len(revoked) != 2 || revoked[0] != "c2" || revoked[1] != "c3" {
			t.Errorf("revoked = %v, want [c2 c3]", revoked)
		}
		if got.Revoked != 2 {
			t.Errorf("Revoked = %d, want 2", got.Revoked)
		}
		if len(got.RevokedIDs) != 2 {
			t.Errorf("RevokedIDs = %v, want 2 ids", got.RevokedIDs)
		}
	})

	t.Run("Fetch failure aborts before any revocation", func(t *testing.T) {
		client := &MockClient{
			GetConsentsFunc: func(ctx context.Context) ([]provider.Consent, error) {
				return nil, &provider.Error{Kind: provider.KindTimeout, Endpoint: "/consents"}
			},
		}

		repo := &MockConsentRepo{
			ListActiveIDsFunc: func(ctx context.Context) ([]string, error) {
				return []string{"c1", "c2"}, nil
			},
			MarkRevokedFunc: func(ctx context.Context, id string) error {
				t.Errorf("MarkRevoked(%s) called after fetch failure", id)
				return nil
			},
		}

		got, err := NewConsentReconciler(client, repo).SyncAll(ctx)
		if err == nil {
			t.Fatal("SyncAll() expected error, got nil")
		}
		if got != nil {
			t.Errorf("SyncAll() result = %+v, want nil", got)
		}
	})

	t.Run("Counts created vs updated and contains upsert failures", func(t *testing.T) {
		client := &MockClient{
			GetConsentsFunc: func(ctx context.Context) ([]provider.Consent, error) {
				return []provider.Consent{
					{ID: "new", CustomerID: "cust1"},
					{ID: "known", CustomerID: "cust2"},
					{ID: "broken", CustomerID: "cust3"},
				}, nil
			},
		}

		repo := &MockConsentRepo{
			ExistsFunc: func(ctx context.Context, id string) (bool, error) {
				return id == "known", nil
			},
			UpsertFunc: func(ctx context.Context, params consent.UpsertParams) (*consent.Consent, error) {
				if params.ID == "broken" {
					return nil, errors.New("constraint violation")
				}
				if params.Status != consent.StatusActive {
					t.Errorf("Upsert status = %s, want active", params.Status)
				}
				return &consent.Consent{ID: params.ID}, nil
			},
			ListActiveIDsFunc: func(ctx context.Context) ([]string, error) {
				return []string{"new", "known", "broken"}, nil
			},
		}

		got, err := NewConsentReconciler(client, repo).SyncAll(ctx)
		if err != nil {
			t.Fatalf("SyncAll() unexpected error: %v", err)
		}
		if got.Created != 1 {
			t.Errorf("Created = %d, want 1", got.Created)
		}
		if got.Updated != 1 {
			t.Errorf("Updated = %d, want 1", got.Updated)
		}
		if len(got.Errors) != 1 {
			t.Errorf("Errors = %v, want exactly 1", got.Errors)
		}
		if got.Revoked != 0 {
			t.Errorf("Revoked = %d, want 0", got.Revoked)
		}
	})
}

func TestConsentSyncOne(t *testing.T) {
	ctx := context.Background()

	t.Run("Provider 404 marks consent revoked", func(t *testing.T) {
		client := &MockClient{
			GetConsentFunc: func(ctx context.Context, id string) (*provider.Consent, error) {
				return nil, &provider.Error{Kind: provider.KindHTTP, Status: 404, Endpoint: "/consents/c1"}
			},
		}

		var revokedID string
		repo := &MockConsentRepo{
			MarkRevokedFunc: func(ctx context.Context, id string) error {
				revokedID = id
				return nil
			},
			GetByIDFunc: func(ctx context.Context, id string) (*consent.Consent, error) {
				return &consent.Consent{ID: id, Status: consent.StatusRevoked}, nil
			},
		}

		got, err := NewConsentReconciler(client, repo).SyncOne(ctx, "c1")
		if err != nil {
			t.Fatalf("SyncOne() unexpected error: %v", err)
		}
		if revokedID != "c1" {
			t.Errorf("revoked id = %s, want c1", revokedID)
		}
		if got.Status != consent.StatusRevoked {
			t.Errorf("status = %s, want revoked", got.Status)
		}
	})

	t.Run("Timeout does not revoke", func(t *testing.T) {
		client := &MockClient{
			GetConsentFunc: func(ctx context.Context, id string) (*provider.Consent, error) {
				return nil, &provider.Error{Kind: provider.KindTimeout, Endpoint: "/consents/c1"}
			},
		}

		repo := &MockConsentRepo{
			MarkRevokedFunc: func(ctx context.Context, id string) error {
				t.Errorf("MarkRevoked(%s) called on timeout", id)
				return nil
			},
		}

		if _, err := NewConsentReconciler(client, repo).SyncOne(ctx, "c1"); err == nil {
			t.Fatal("SyncOne() expected error, got nil")
		}
	})
}
