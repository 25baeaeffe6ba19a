package postgres

import (
	"context"
	"fmt"

	"finmirror/internal/domain/notification"
)

// NotificationRepository implements the notification.Repository interface for PostgreSQL
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// UpsertDeviceToken registers or updates a device token for a user.
// If the token exists for a different user, it is reassigned.
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error) {
	query := `
		INSERT INTO fcm_device_tokens (user_id, token, device_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
			SET user_id = EXCLUDED.user_id,
			    device_type = EXCLUDED.device_type,
			    is_active = true,
			    last_used = NOW()
		RETURNING id, user_id, token, device_type, is_active, created_at, last_used
	`

	var dt notification.DeviceToken
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Token, params.DeviceType).Scan(
		&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &dt, nil
}

// GetActiveTokensByUserID retrieves a user's active device tokens
func (r *NotificationRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, device_type, is_active, created_at, last_used
		FROM fcm_device_tokens
		WHERE user_id = $1 AND is_active = true
		ORDER BY last_used DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*notification.DeviceToken
	for rows.Next() {
		var dt notification.DeviceToken
		if err := rows.Scan(&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, &dt)
	}

	return tokens, rows.Err()
}

// DeactivateToken marks a device token inactive
func (r *NotificationRepository) DeactivateToken(ctx context.Context, token string) error {
	query := `UPDATE fcm_device_tokens SET is_active = false WHERE token = $1`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return notification.ErrDeviceTokenNotFound
	}

	return nil
}
