package institution

import (
	"errors"
	"time"
)

var ErrInstitutionNotFound = errors.New("institution not found")

// Institution mirrors one entry of the provider's institution directory.
// ID is the provider's external id and the idempotency key for upserts.
type Institution struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Active       bool      `json:"active"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}

// UpsertParams contains parameters for creating or refreshing an institution
type UpsertParams struct {
	ID          string
	DisplayName string
	Active      bool
}

func (p UpsertParams) Validate() error {
	if p.ID == "" {
		return errors.New("institution ID is required for upsert")
	}
	if p.DisplayName == "" {
		return errors.New("institution display name is required")
	}
	return nil
}
