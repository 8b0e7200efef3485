package services

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeAPI serves canned bodies by request path and counts hits
type fakeAPI struct {
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	hits   map[string]int
}

func newFakeAPI(t *testing.T, bodies map[string]string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{bodies: bodies, status: map[string]int{}, hits: map[string]int{}}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return api, server
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	body, ok := f.bodies[r.URL.Path]
	status := f.status[r.URL.Path]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(body))
}

func (f *fakeAPI) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

const testLeague = "L1"

// leagueFixture is a four-team league with two played weeks
func leagueFixture() map[string]string {
	return map[string]string{
		"/state/nfl": `{"week": 3, "leg": 3, "season": "2025", "season_type": "regular"}`,
		"/league/L1/rosters": `[
			{"roster_id": 1, "owner_id": "u1", "starters": ["p1", "p2"]},
			{"roster_id": 2, "owner_id": "u2", "starters": ["p3"]},
			{"roster_id": 3, "owner_id": "u3", "starters": ["p4", "unknown"]},
			{"roster_id": 4, "owner_id": null, "starters": []}
		]`,
		"/league/L1/users": `[
			{"user_id": "u1", "display_name": "alice", "metadata": {"team_name": "Synergy Squad"}},
			{"user_id": "u2", "display_name": "bob", "metadata": {}},
			{"user_id": "u3", "display_name": "carol"}
		]`,
		"/league/L1/matchups/1": `[
			{"roster_id": 1, "matchup_id": 1, "points": 120.5},
			{"roster_id": 2, "matchup_id": 1, "points": 80.25},
			{"roster_id": 3, "matchup_id": 2, "points": 101},
			{"roster_id": 4, "matchup_id": 2, "points": 99}
		]`,
		"/league/L1/matchups/2": `[
			{"roster_id": 1, "matchup_id": 1, "points": 90},
			{"roster_id": 3, "matchup_id": 1, "points": 130},
			{"roster_id": 2, "matchup_id": 2, "points": 110},
			{"roster_id": 4, "matchup_id": 2, "points": "n/a"}
		]`,
		"/league/L1/matchups/3": `[]`,
		"/players/nfl": `{
			"p1": {"player_id": "p1", "full_name": "Patrick Mahomes", "position": "QB", "team": "KC", "status": "Active", "injury_status": "questionable"},
			"p2": {"player_id": "p2", "first_name": "Travis", "last_name": "Kelce", "fantasy_positions": ["TE"], "team": "KC", "status": "Active"},
			"p3": {"player_id": "p3", "full_name": "Christian McCaffrey", "position": "RB", "team": "SF", "injury_status": "IR"},
			"p4": {"player_id": "p4", "full_name": "Ja'Marr Chase", "position": "WR", "team": "CIN", "status": "Active"}
		}`,
	}
}

func newTestLeague(t *testing.T) (*fakeAPI, *LeagueService) {
	t.Helper()
	api, server := newFakeAPI(t, leagueFixture())
	return api, NewLeagueService(NewSleeperService(server.URL, testLeague, 5*time.Second))
}
