package notification

import (
	"context"
	"log"
)

// Service sends push notifications to a user's registered devices. A nil
// messenger disables delivery while keeping device registration working.
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers or refreshes an FCM device token for a user
func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// NotifyConsentRevoked tells the consent owner their bank link stopped
// syncing. Delivery failures are logged, never propagated: a push problem
// must not disturb the sync that triggered it.
func (s *Service) NotifyConsentRevoked(ctx context.Context, userID int64, consentID string) {
	if s.messenger == nil {
		return
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		log.Printf("Failed to load device tokens for user %d: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}

	err = s.messenger.SendMulticast(ctx, values,
		"Bank connection ended",
		"One of your bank connections was revoked and is no longer syncing.",
		map[string]string{"type": "consent_revoked", "consentId": consentID},
	)
	if err != nil {
		log.Printf("Failed to notify user %d of revoked consent %s: %v", userID, consentID, err)
	}
}
