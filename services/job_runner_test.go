package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

type stubJob struct {
	name   string
	gated  bool
	msg    *models.WebhookMessage
	err    error
	params []JobParams
}

func (j *stubJob) Name() string      { return j.name }
func (j *stubJob) SeasonGated() bool { return j.gated }
func (j *stubJob) Build(_ context.Context, params JobParams) (*models.WebhookMessage, error) {
	j.params = append(j.params, params)
	return j.msg, j.err
}

type memoryArchive struct {
	mu      sync.Mutex
	records []*models.PostRecord
}

func (a *memoryArchive) SavePost(_ context.Context, record *models.PostRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, record)
	return nil
}

var (
	inSeason  = time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	offSeason = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newTestRunner(t *testing.T, webhookStatus int) (*JobRunner, *memoryArchive, *bytes.Buffer) {
	t.Helper()
	server := webhookServer(t, webhookStatus, nil)
	discord := NewDiscordService(server.URL, false)
	preview := &bytes.Buffer{}
	discord.SetPreviewWriter(preview)

	window := NewSeasonWindow(
		time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	runner := NewJobRunner(discord, window)
	archive := &memoryArchive{}
	runner.SetArchive(archive)
	runner.SetClock(func() time.Time { return inSeason })
	return runner, archive, preview
}

func TestJobRunnerPosts(t *testing.T) {
	runner, archive, _ := newTestRunner(t, http.StatusNoContent)
	job := &stubJob{name: "recap", gated: true, msg: &models.WebhookMessage{Content: "hi"}}
	runner.Register(job)

	result, err := runner.Run(context.Background(), "recap", RunOptions{Week: 4})
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusPosted, result.Status)
	assert.Equal(t, http.StatusNoContent, result.HTTPStatus)
	assert.Len(t, result.RunID, 36)
	assert.Equal(t, []JobParams{{Week: 4}}, job.params)

	require.Len(t, archive.records, 1)
	assert.Equal(t, result.RunID, archive.records[0].ID)
	assert.Empty(t, archive.records[0].Error)
}

func TestJobRunnerSkipsOutOfSeason(t *testing.T) {
	runner, archive, _ := newTestRunner(t, http.StatusNoContent)
	runner.SetClock(func() time.Time { return offSeason })
	gated := &stubJob{name: "lineup", gated: true, msg: &models.WebhookMessage{Content: "x"}}
	ungated := &stubJob{name: "weather", msg: &models.WebhookMessage{Content: "x"}}
	runner.Register(gated, ungated)

	result, err := runner.Run(context.Background(), "lineup", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusSkipped, result.Status)
	assert.Contains(t, result.Reason, "out of season")
	assert.Empty(t, gated.params)

	forced, err := runner.Run(context.Background(), "lineup", RunOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPosted, forced.Status)

	weather, err := runner.Run(context.Background(), "weather", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPosted, weather.Status)

	assert.Len(t, archive.records, 3)
}

func TestJobRunnerDryRun(t *testing.T) {
	runner, _, preview := newTestRunner(t, http.StatusInternalServerError)
	runner.Register(&stubJob{name: "rankings", gated: true, msg: &models.WebhookMessage{Content: "preview me"}})

	result, err := runner.Run(context.Background(), "rankings", RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDryRun, result.Status)
	assert.Zero(t, result.HTTPStatus)
	assert.Contains(t, preview.String(), "preview me")
}

func TestJobRunnerFailures(t *testing.T) {
	runner, archive, _ := newTestRunner(t, http.StatusBadRequest)
	boom := errors.New("sleeper down")
	runner.Register(
		&stubJob{name: "broken", err: boom},
		&stubJob{name: "rejected", msg: &models.WebhookMessage{Content: "x"}},
	)

	result, err := runner.Run(context.Background(), "broken", RunOptions{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, models.JobStatusFailed, result.Status)

	result, err = runner.Run(context.Background(), "rejected", RunOptions{})
	assert.ErrorIs(t, err, ErrWebhookRejected)
	assert.Equal(t, models.JobStatusFailed, result.Status)
	assert.Equal(t, http.StatusBadRequest, result.HTTPStatus)

	require.Len(t, archive.records, 2)
	assert.Equal(t, "sleeper down", archive.records[0].Error)

	_, err = runner.Run(context.Background(), "nope", RunOptions{})
	assert.ErrorIs(t, err, ErrUnknownJob)
	assert.Equal(t, []string{"broken", "rejected"}, runner.JobNames())
}
