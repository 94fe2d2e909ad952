// Package notify builds the run summary and delivers it over a Discord
// webhook. The formatter and the transport are deliberately separate so the
// transport can be swapped without touching action logic.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DiscordNotifier sends messages to a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Username   string
	AvatarURL  string
	Client     *http.Client
	Log        *logrus.Entry
}

// NewDiscordNotifier builds a notifier for the given webhook.
func NewDiscordNotifier(webhookURL, username, avatarURL string, log *logrus.Entry) *DiscordNotifier {
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Username:   username,
		AvatarURL:  avatarURL,
		Client:     &http.Client{Timeout: 30 * time.Second},
		Log:        log,
	}
}

// Send posts one message to the webhook.
func (d *DiscordNotifier) Send(text string) error {
	payload := map[string]string{"content": text}
	if d.Username != "" {
		payload["username"] = d.Username
	}
	if d.AvatarURL != "" {
		payload["avatar_url"] = d.AvatarURL
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := d.Client.Post(d.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends with exponential backoff.
func (d *DiscordNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := d.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			d.Log.WithError(err).Warnf("discord send failed (attempt %d/%d), retrying in %v", i+1, maxRetries+1, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
