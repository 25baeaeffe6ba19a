package sync

import (
	"context"
	"errors"
	"testing"

	"finmirror/internal/domain/institution"
	"finmirror/internal/infrastructure/provider"
)

func TestInstitutionSyncAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		client      *MockClient
		repo        *MockInstitutionRepo
		wantErr     bool
		wantCreated int
		wantUpdated int
		wantErrors  int
	}{
		{
			name: "Creates new and updates known institutions",
			client: &MockClient{
				GetInstitutionsFunc: func(ctx context.Context) ([]provider.Institution, error) {
					return []provider.Institution{
						{ID: "inst-1", Name: "First Bank", Status: true},
						{ID: "inst-2", Name: "Second Bank", Status: false},
					}, nil
				},
			},
			repo: &MockInstitutionRepo{
				ExistsFunc: func(ctx context.Context, id string) (bool, error) {
					return id == "inst-2", nil
				},
			},
			wantCreated: 1,
			wantUpdated: 1,
		},
		{
			name: "Directory fetch failure fails the pass",
			client: &MockClient{
				GetInstitutionsFunc: func(ctx context.Context) ([]provider.Institution, error) {
					return nil, &provider.Error{Kind: provider.KindNetwork, Endpoint: "/institution"}
				},
			},
			repo:    &MockInstitutionRepo{},
			wantErr: true,
		},
		{
			name: "Upsert failure is contained per entry",
			client: &MockClient{
				GetInstitutionsFunc: func(ctx context.Context) ([]provider.Institution, error) {
					return []provider.Institution{
						{ID: "ok", Name: "Good Bank", Status: true},
						{ID: "bad", Name: "Broken Bank", Status: true},
					}, nil
				},
			},
			repo: &MockInstitutionRepo{
				UpsertFunc: func(ctx context.Context, params institution.UpsertParams) (*institution.Institution, error) {
					if params.ID == "bad" {
						return nil, errors.New("write failed")
					}
					return &institution.Institution{ID: params.ID}, nil
				},
			},
			wantCreated: 1,
			wantErrors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInstitutionReconciler(tt.client, tt.repo).SyncAll(ctx)

			if tt.wantErr {
				if err == nil {
					t.Fatal("SyncAll() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("SyncAll() unexpected error: %v", err)
			}
			if got.Created != tt.wantCreated {
				t.Errorf("Created = %d, want %d", got.Created, tt.wantCreated)
			}
			if got.Updated != tt.wantUpdated {
				t.Errorf("Updated = %d, want %d", got.Updated, tt.wantUpdated)
			}
			if len(got.Errors) != tt.wantErrors {
				t.Errorf("Errors = %v, want %d", got.Errors, tt.wantErrors)
			}
		})
	}
}
