package consent

import "context"

// Repository defines the interface for consent data access.
// Implementations must populate Capabilities from the stored permission
// strings on every read, so callers never re-parse raw text.
type Repository interface {
	// Upsert creates or updates a consent keyed by its provider id,
	// advancing lastSyncedAt. The owner link is preserved on update.
	Upsert(ctx context.Context, params UpsertParams) (*Consent, error)

	// Exists checks if a consent with the given ID exists
	Exists(ctx context.Context, id string) (bool, error)

	// GetByID retrieves a consent by its ID
	GetByID(ctx context.Context, id string) (*Consent, error)

	// GetByCustomerID retrieves the consent linked to a provider customer
	GetByCustomerID(ctx context.Context, customerID string) (*Consent, error)

	// ListActive retrieves unexpired consents with status=active
	ListActive(ctx context.Context) ([]*Consent, error)

	// ListActiveIDs retrieves the ids of all consents with status=active,
	// expired or not, for the revocation diff
	ListActiveIDs(ctx context.Context) ([]string, error)

	// MarkRevoked flips a consent's status to revoked, advancing lastSyncedAt
	MarkRevoked(ctx context.Context, id string) error

	// SetOwner links a consent to a local user. Fails with ErrAlreadyClaimed
	// when the consent is owned by a different user.
	SetOwner(ctx context.Context, id string, userID int64) error
}
