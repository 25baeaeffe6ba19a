// Package firebase delivers push notifications through Firebase Cloud
// Messaging. It implements notification.Messenger.
package firebase

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const (
	// FCM rejects multicast batches larger than 500 tokens.
	batchLimit = 500

	// Android channel the mobile app registers for sync alerts.
	alertChannel = "sync-alerts"
)

// TokenDeactivator marks a device token FCM reported as stale. Provided by
// the service layer so this package stays off the repository.
type TokenDeactivator func(ctx context.Context, token string) error

// Client sends push notifications via FCM and retires tokens the provider
// reports as dead.
type Client struct {
	msgClient   *messaging.Client
	deactivator TokenDeactivator
}

// NewClient initializes the Firebase app from a service-account credentials
// file and returns an FCM client. deactivator may be nil when stale tokens
// should be left alone.
func NewClient(ctx context.Context, credentialsFile string, deactivator TokenDeactivator) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient, deactivator: deactivator}, nil
}

// Send delivers one alert to a single device token.
func (c *Client) Send(ctx context.Context, token string, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android:      androidAlertConfig(),
		APNS:         apnsAlertConfig(),
	}

	if _, err := c.msgClient.Send(ctx, msg); err != nil {
		if isStaleToken(err) {
			log.Printf("Device token rejected by FCM, deactivating: %s", token)
			c.deactivateToken(ctx, token)
			return fmt.Errorf("stale device token: %w", err)
		}
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	return nil
}

// SendMulticast delivers one alert to every token of a user's device set,
// batching to the FCM multicast limit. Per-token failures never fail the
// call; stale tokens are deactivated as they surface.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	var delivered, failed int
	for _, batch := range splitBatches(tokens, batchLimit) {
		msg := &messaging.MulticastMessage{
			Tokens:       batch,
			Notification: &messaging.Notification{Title: title, Body: body},
			Data:         data,
			Android:      androidAlertConfig(),
			APNS:         apnsAlertConfig(),
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, msg)
		if err != nil {
			return fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		delivered += resp.SuccessCount
		failed += resp.FailureCount
		if resp.FailureCount > 0 {
			c.retireFailedTokens(ctx, batch, resp)
		}
	}

	log.Printf("FCM multicast: %d delivered, %d failed", delivered, failed)
	return nil
}

// androidAlertConfig routes alerts to the app's sync channel at high
// priority. Consent revocations are rare and the user must see them even
// with the app backgrounded.
func androidAlertConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{
		Priority:     "high",
		Notification: &messaging.AndroidNotification{ChannelID: alertChannel},
	}
}

func apnsAlertConfig() *messaging.APNSConfig {
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{Sound: "default"},
		},
	}
}

func (c *Client) retireFailedTokens(ctx context.Context, tokens []string, resp *messaging.BatchResponse) {
	for i, sendResp := range resp.Responses {
		if sendResp.Error == nil {
			continue
		}
		if isStaleToken(sendResp.Error) {
			log.Printf("Device token rejected by FCM, deactivating: %s", tokens[i])
			c.deactivateToken(ctx, tokens[i])
		} else {
			log.Printf("FCM send error for token %s: %v", tokens[i], sendResp.Error)
		}
	}
}

// isStaleToken reports whether the FCM error means the token will never
// work again, as opposed to a transient delivery problem.
func isStaleToken(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}

func (c *Client) deactivateToken(ctx context.Context, token string) {
	if c.deactivator == nil {
		return
	}
	if err := c.deactivator(ctx, token); err != nil {
		log.Printf("Failed to deactivate device token %s: %v", token, err)
	}
}

func splitBatches(tokens []string, size int) [][]string {
	var batches [][]string
	for i := 0; i < len(tokens); i += size {
		end := min(i+size, len(tokens))
		batches = append(batches, tokens[i:end])
	}
	return batches
}
