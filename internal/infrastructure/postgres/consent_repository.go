package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"finmirror/internal/domain/consent"
)

// ConsentRepository implements the consent.Repository interface for PostgreSQL
type ConsentRepository struct {
	db *DB
}

// NewConsentRepository creates a new PostgreSQL consent repository
func NewConsentRepository(db *DB) *ConsentRepository {
	return &ConsentRepository{db: db}
}

const consentColumns = `id, owner_user_id, institution_id, customer_id, client_app_id, permissions, status, created_at, expires_at, last_synced_at`

// Upsert creates or updates a consent based on its provider id.
// owner_user_id is deliberately absent from the update set: provider data
// never overwrites the local claim.
func (r *ConsentRepository) Upsert(ctx context.Context, params consent.UpsertParams) (*consent.Consent, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO consents (id, institution_id, customer_id, client_app_id, permissions, status, created_at, expires_at, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			institution_id = EXCLUDED.institution_id,
			customer_id = EXCLUDED.customer_id,
			client_app_id = EXCLUDED.client_app_id,
			permissions = EXCLUDED.permissions,
			status = EXCLUDED.status,
			expires_at = EXCLUDED.expires_at,
			last_synced_at = CURRENT_TIMESTAMP
		RETURNING ` + consentColumns

	row := r.db.QueryRowContext(
		ctx, query,
		params.ID, nullString(params.InstitutionID), params.CustomerID, params.ClientAppID,
		pq.Array(params.Permissions), params.Status, params.CreatedAt, params.ExpiresAt,
	)

	c, err := scanConsent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert consent: %w", err)
	}
	return c, nil
}

// Exists checks if a consent with the given ID exists
func (r *ConsentRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM consents WHERE id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check consent existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a consent by its ID
func (r *ConsentRepository) GetByID(ctx context.Context, id string) (*consent.Consent, error) {
	query := `SELECT ` + consentColumns + ` FROM consents WHERE id = $1`

	c, err := scanConsent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, consent.ErrConsentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consent: %w", err)
	}
	return c, nil
}

// GetByCustomerID retrieves the consent linked to a provider customer
func (r *ConsentRepository) GetByCustomerID(ctx context.Context, customerID string) (*consent.Consent, error) {
	query := `SELECT ` + consentColumns + ` FROM consents WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 1`

	c, err := scanConsent(r.db.QueryRowContext(ctx, query, customerID))
	if err == sql.ErrNoRows {
		return nil, consent.ErrConsentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consent by customer: %w", err)
	}
	return c, nil
}

// ListActive retrieves unexpired consents with status=active
func (r *ConsentRepository) ListActive(ctx context.Context) ([]*consent.Consent, error) {
	query := `
		SELECT ` + consentColumns + `
		FROM consents
		WHERE status = $1 AND expires_at > CURRENT_TIMESTAMP
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, consent.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active consents: %w", err)
	}
	defer rows.Close()

	var consents []*consent.Consent
	for rows.Next() {
		c, err := scanConsent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consent: %w", err)
		}
		consents = append(consents, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consents: %w", err)
	}

	return consents, nil
}

// ListActiveIDs retrieves the ids of all consents with status=active,
// regardless of expiry. Expired-but-active consents must stay in the
// revocation diff or they could never be revoked.
func (r *ConsentRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM consents WHERE status = $1`

	rows, err := r.db.QueryContext(ctx, query, consent.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active consent ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan consent id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consent ids: %w", err)
	}

	return ids, nil
}

// MarkRevoked flips a consent's status to revoked
func (r *ConsentRepository) MarkRevoked(ctx context.Context, id string) error {
	query := `UPDATE consents SET status = $1, last_synced_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, consent.StatusRevoked, id)
	if err != nil {
		return fmt.Errorf("failed to revoke consent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return consent.ErrConsentNotFound
	}

	return nil
}

// SetOwner links a consent to a local user. A consent already claimed by a
// different user is left untouched and reported as such.
func (r *ConsentRepository) SetOwner(ctx context.Context, id string, userID int64) error {
	query := `
		UPDATE consents
		SET owner_user_id = $1
		WHERE id = $2 AND (owner_user_id IS NULL OR owner_user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to set consent owner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return consent.ErrConsentNotFound
		}
		return consent.ErrAlreadyClaimed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConsent(row rowScanner) (*consent.Consent, error) {
	var c consent.Consent
	var ownerUserID sql.NullInt64
	var institutionID sql.NullString
	var permissions pq.StringArray

	err := row.Scan(
		&c.ID, &ownerUserID, &institutionID, &c.CustomerID, &c.ClientAppID,
		&permissions, &c.Status, &c.CreatedAt, &c.ExpiresAt, &c.LastSyncedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerUserID.Valid {
		c.OwnerUserID = &ownerUserID.Int64
	}
	if institutionID.Valid {
		c.InstitutionID = institutionID.String
	}
	c.Permissions = []string(permissions)
	c.Capabilities = consent.ParseCapabilities(c.Permissions)

	return &c, nil
}
