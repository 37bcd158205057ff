package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// NotificationClient implements usecase.Notifier against the
// notification service.
type NotificationClient struct {
	baseClient
}

func NewNotificationClient(baseURL, apiKey string, logger zerolog.Logger) *NotificationClient {
	return &NotificationClient{
		baseClient: newBaseClient(baseURL, apiKey, logger.With().Str("client", "notifications").Logger()),
	}
}

type notifyRequest struct {
	UserID string         `json:"user_id"`
	Type   string         `json:"type"`
	Data   map[string]any `json:"data,omitempty"`
}

// Notify sends a user notification. Callers treat failures as
// best-effort.
func (c *NotificationClient) Notify(ctx context.Context, userID, notificationType string, data map[string]any) error {
	req := notifyRequest{UserID: userID, Type: notificationType, Data: data}

	if err := c.doJSON(ctx, http.MethodPost, "/v1/notifications", req, nil); err != nil {
		return fmt.Errorf("notify user %s: %w", userID, err)
	}

	return nil
}
