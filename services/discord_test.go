package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

func webhookServer(t *testing.T, status int, received *[]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		if received != nil {
			*received = body
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDiscordPost(t *testing.T) {
	var body []byte
	server := webhookServer(t, http.StatusNoContent, &body)
	discord := NewDiscordService(server.URL, false)

	status, err := discord.Post(context.Background(), &models.WebhookMessage{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.JSONEq(t, `{"content": "hello"}`, string(body))
}

func TestDiscordRejected(t *testing.T) {
	server := webhookServer(t, http.StatusBadRequest, nil)
	discord := NewDiscordService(server.URL, false)

	status, err := discord.Post(context.Background(), &models.WebhookMessage{Content: "hello"})
	assert.ErrorIs(t, err, ErrWebhookRejected)
	assert.Equal(t, http.StatusBadRequest, status)

	_, err = discord.Post(context.Background(), &models.WebhookMessage{})
	assert.Error(t, err)
}

func TestDiscordDryRun(t *testing.T) {
	discord := NewDiscordService("", false)
	assert.True(t, discord.DryRun())

	_, err := discord.Post(context.Background(), &models.WebhookMessage{Content: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var out bytes.Buffer
	discord.SetPreviewWriter(&out)
	require.NoError(t, discord.Preview(&models.WebhookMessage{Embeds: []models.Embed{{Title: "Lineup Health Check"}}}))
	assert.Contains(t, out.String(), `"title": "Lineup Health Check"`)
}
