package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sleeper-league-bot/config"
	"sleeper-league-bot/models"
	"sleeper-league-bot/services"
)

func sleeperStub(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/state/nfl":         `{"week": 1, "season": "2025"}`,
		"/league/L1/rosters": `[{"roster_id": 1, "owner_id": "u1"}, {"roster_id": 2, "owner_id": "u2"}]`,
		"/league/L1/users":   `[{"user_id": "u1", "display_name": "alice"}, {"user_id": "u2", "display_name": "bob"}]`,
		"/league/L1/matchups/1": `[
			{"roster_id": 1, "matchup_id": 1, "points": 120},
			{"roster_id": 2, "matchup_id": 1, "points": 80}
		]`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Sleeper: config.SleeperConfig{BaseURL: baseURL, LeagueID: "L1", Timeout: 5 * time.Second},
		Discord: config.DiscordConfig{DryRun: true},
		Season: config.SeasonConfig{
			Year:     2025,
			Start:    time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		Weather: config.WeatherConfig{WindSustainedMPH: 18, WindGustMPH: 30, PrecipPct: 40, GameType: "REG", MaxFlagged: 10},
		Scheduler: config.SchedulerConfig{
			RecapCron:   "0 9 * * 2",
			LineupCron:  "",
			WeatherCron: "0 8 * * 0,1,4",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *app {
	t.Helper()
	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"recap", "lineup", "weather", "rankings", "serve", "schedule", "hash-key"} {
		assert.True(t, names[want], want)
	}
}

func TestJobCommandFlags(t *testing.T) {
	cmd := newJobCommand("recap", "short", "")
	require.NotNil(t, cmd.Flags().Lookup("week"))
	require.NotNil(t, cmd.Flags().Lookup("force"))
	assert.Equal(t, "recap", cmd.Name())
}

func TestHashKeyFromArgAndStdin(t *testing.T) {
	var out bytes.Buffer
	hashKeyCmd.SetOut(&out)
	require.NoError(t, runHashKey(hashKeyCmd, []string{"s3cret"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out.String())), []byte("s3cret")))

	out.Reset()
	hashKeyCmd.SetIn(strings.NewReader("from-stdin\n"))
	require.NoError(t, runHashKey(hashKeyCmd, nil))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out.String())), []byte("from-stdin")))

	hashKeyCmd.SetIn(strings.NewReader("\n"))
	assert.Error(t, runHashKey(hashKeyCmd, nil))
}

func TestAppRegistersJobs(t *testing.T) {
	a := newTestApp(t, testConfig(sleeperStub(t).URL))
	assert.ElementsMatch(t, []string{"lineup", "rankings", "recap", "weather"}, a.runner.JobNames())
	assert.Nil(t, a.posts)
}

func TestSchedulerSkipsEmptySpecs(t *testing.T) {
	a := newTestApp(t, testConfig(sleeperStub(t).URL))
	s, err := a.scheduler(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	a.cfg.Scheduler.RecapCron = "not a cron"
	_, err = a.scheduler(context.Background())
	assert.Error(t, err)
}

func TestRouterPublicRoutes(t *testing.T) {
	a := newTestApp(t, testConfig(sleeperStub(t).URL))
	router, err := a.router()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rankings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		ThroughWeek int `json:"through_week"`
		Rows        []struct {
			Rank int    `json:"rank"`
			Team string `json:"team"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.ThroughWeek)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "alice", view.Rows[0].Team)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rankings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestRouterProtectedRoutes(t *testing.T) {
	hash, err := services.HashAdminKey("s3cret")
	require.NoError(t, err)

	cfg := testConfig(sleeperStub(t).URL)
	cfg.Auth = config.AuthConfig{AdminKeyHash: hash, JWTSecret: "signing-key"}
	a := newTestApp(t, cfg)
	router, err := a.router()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/rankings/run", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"key":"s3cret"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/rankings/run?dry_run=true&force=true", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.JobResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.JobStatusDryRun, result.Status)
	require.NotNil(t, result.Message)
	assert.Contains(t, result.Message.Content, "Power Rankings (through Week 1)")

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
