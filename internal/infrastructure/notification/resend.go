package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sppg/backend/internal/domain/notification"
	"github.com/sppg/backend/internal/infrastructure/config"
)

// ResendGateway delivers email through the Resend API
type ResendGateway struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
}

// NewResendGateway creates a Resend email gateway
func NewResendGateway(cfg config.NotificationConfig) *ResendGateway {
	return &ResendGateway{
		apiKey:  cfg.ResendAPIKey,
		baseURL: strings.TrimRight(cfg.ResendBaseURL, "/"),
		from:    cfg.EmailFrom,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Channel implements notification.Gateway
func (g *ResendGateway) Channel() notification.Channel {
	return notification.ChannelEmail
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send posts one email to the Resend emails endpoint
func (g *ResendGateway) Send(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(resendRequest{
		From:    g.from,
		To:      []string{recipient},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

var _ notification.Gateway = (*ResendGateway)(nil)
