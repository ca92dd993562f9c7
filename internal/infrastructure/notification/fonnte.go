package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sppg/backend/internal/domain/notification"
	"github.com/sppg/backend/internal/infrastructure/config"
)

// FonnteGateway delivers WhatsApp messages through the Fonnte API
type FonnteGateway struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewFonnteGateway creates a Fonnte WhatsApp gateway
func NewFonnteGateway(cfg config.NotificationConfig) *FonnteGateway {
	return &FonnteGateway{
		token:   cfg.FonnteToken,
		baseURL: strings.TrimRight(cfg.FonnteBaseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Channel implements notification.Gateway
func (g *FonnteGateway) Channel() notification.Channel {
	return notification.ChannelWhatsApp
}

// Send posts one message to the Fonnte send endpoint
func (g *FonnteGateway) Send(ctx context.Context, recipient, subject, body string) error {
	message := body
	if subject != "" {
		message = "*" + subject + "*\n\n" + body
	}

	form := url.Values{}
	form.Set("target", recipient)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/send", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build fonnte request: %w", err)
	}
	req.Header.Set("Authorization", g.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("fonnte request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("fonnte returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

var _ notification.Gateway = (*FonnteGateway)(nil)
