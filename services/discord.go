package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// DiscordService posts messages to a Discord webhook
type DiscordService struct {
	client     *http.Client
	webhookURL string
	dryRun     bool
	preview    io.Writer
	logger     *logging.Logger
}

// NewDiscordService creates a webhook client. With dryRun set, or with no
// webhook URL, messages are written to stdout instead of posted.
func NewDiscordService(webhookURL string, dryRun bool) *DiscordService {
	return &DiscordService{
		client:     &http.Client{Timeout: 15 * time.Second},
		webhookURL: webhookURL,
		dryRun:     dryRun || webhookURL == "",
		preview:    os.Stdout,
		logger:     logging.WithPrefix("Discord"),
	}
}

// SetPreviewWriter changes where dry-run payloads are written
func (d *DiscordService) SetPreviewWriter(w io.Writer) {
	d.preview = w
}

// DryRun reports whether the service only previews messages
func (d *DiscordService) DryRun() bool {
	return d.dryRun
}

// Post sends msg to the webhook and returns the HTTP status. Discord answers
// 204 without ?wait and 200 with it; anything else is ErrWebhookRejected.
func (d *DiscordService) Post(ctx context.Context, msg *models.WebhookMessage) (int, error) {
	if d.webhookURL == "" {
		return 0, fmt.Errorf("%w: DISCORD_WEBHOOK_URL", ErrNotConfigured)
	}
	if msg.IsEmpty() {
		return 0, fmt.Errorf("refusing to post an empty message")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	d.logger.Infof("Discord webhook status: %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrWebhookRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}
	return resp.StatusCode, nil
}

// Preview writes the payload as indented JSON
func (d *DiscordService) Preview(msg *models.WebhookMessage) error {
	body, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}
	if _, err := fmt.Fprintf(d.preview, "%s\n", body); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
