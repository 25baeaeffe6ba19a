package notification

import (
	"errors"
	"time"
)

var validDeviceTypes = map[string]struct{}{
	"ios":     {},
	"android": {},
}

// Domain errors
var (
	ErrDeviceTokenNotFound = errors.New("device token not found")
	ErrInvalidDeviceType   = errors.New("device type must be 'ios' or 'android'")
	ErrInvalidToken        = errors.New("device token is required")
)

// DeviceToken represents a registered FCM device token
type DeviceToken struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	Token      string    `json:"token"`
	DeviceType string    `json:"deviceType"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsed   time.Time `json:"lastUsed"`
}

// RegisterDeviceParams contains parameters for registering a device
type RegisterDeviceParams struct {
	UserID     int64
	Token      string
	DeviceType string
}

func (p RegisterDeviceParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Token == "" {
		return ErrInvalidToken
	}
	if !IsValidDeviceType(p.DeviceType) {
		return ErrInvalidDeviceType
	}
	return nil
}

func IsValidDeviceType(dt string) bool {
	_, ok := validDeviceTypes[dt]
	return ok
}
