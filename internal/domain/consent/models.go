package consent

import (
	"errors"
	"time"
)

// Consent status values. Revocation is only ever inferred: a consent absent
// from the provider's active list is marked revoked, never deleted.
const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

// Domain errors
var (
	ErrConsentNotFound = errors.New("consent not found")
	ErrOwnerMissing    = errors.New("consent has no owner user")
	ErrAlreadyClaimed  = errors.New("consent already linked to a user")
)

// Consent links a local user to a provider customer, granting scoped data
// access. ID is the provider's external id. OwnerUserID is assigned locally
// when a user claims the consent; a consent without an owner is excluded
// from cascading sync.
type Consent struct {
	ID            string        `json:"id"`
	OwnerUserID   *int64        `json:"ownerUserId,omitempty"`
	InstitutionID string        `json:"institutionId,omitempty"`
	CustomerID    string        `json:"customerId"`
	ClientAppID   string        `json:"clientAppId"`
	Permissions   []string      `json:"permissions"`
	Capabilities  CapabilitySet `json:"-"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	LastSyncedAt  time.Time     `json:"lastSyncedAt"`
}

// HasOwner reports whether the consent is linked to a local user and can
// therefore participate in the cascading sync.
func (c *Consent) HasOwner() bool {
	return c.OwnerUserID != nil && *c.OwnerUserID > 0
}

// UpsertParams contains parameters for creating or refreshing a consent.
// The owner link is managed separately (SetOwner) and is never overwritten
// by provider data.
type UpsertParams struct {
	ID            string
	InstitutionID string
	CustomerID    string
	ClientAppID   string
	Permissions   []string
	Status        string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

func (p UpsertParams) Validate() error {
	if p.ID == "" {
		return errors.New("consent ID is required for upsert")
	}
	if p.CustomerID == "" {
		return errors.New("consent customer ID is required")
	}
	if p.Status != StatusActive && p.Status != StatusRevoked {
		return errors.New("consent status must be active or revoked")
	}
	return nil
}
