package notification

import "context"

// Repository defines the interface for device token data access
type Repository interface {
	// UpsertDeviceToken registers or refreshes a device token for a user
	UpsertDeviceToken(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error)

	// GetActiveTokensByUserID retrieves a user's active device tokens
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)

	// DeactivateToken marks a device token inactive
	DeactivateToken(ctx context.Context, token string) error
}
