package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// SleeperService handles Sleeper API interactions
type SleeperService struct {
	client   *http.Client
	baseURL  string
	leagueID string
	logger   *logging.Logger
}

// NewSleeperService creates a new Sleeper service for one league
func NewSleeperService(baseURL, leagueID string, timeout time.Duration) *SleeperService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SleeperService{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		leagueID: leagueID,
		logger:   logging.WithPrefix("Sleeper"),
	}
}

// LeagueID returns the league this service reads
func (s *SleeperService) LeagueID() string {
	return s.leagueID
}

func (s *SleeperService) get(ctx context.Context, path string, out interface{}) error {
	url := s.baseURL + path
	s.logger.Debugf("GET %s", url)
	if err := fetchJSON(ctx, s.client, url, out); err != nil {
		s.logger.Warnf("Request failed: %v", err)
		return err
	}
	return nil
}

// GetNFLState fetches the current NFL season state
func (s *SleeperService) GetNFLState(ctx context.Context) (*models.NFLState, error) {
	var state models.NFLState
	if err := s.get(ctx, "/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("failed to fetch NFL state: %w", err)
	}
	return &state, nil
}

// GetLeague fetches league metadata
func (s *SleeperService) GetLeague(ctx context.Context) (*models.League, error) {
	var league models.League
	if err := s.get(ctx, "/league/"+s.leagueID, &league); err != nil {
		return nil, fmt.Errorf("failed to fetch league %s: %w", s.leagueID, err)
	}
	return &league, nil
}

// GetRosters fetches every roster in the league
func (s *SleeperService) GetRosters(ctx context.Context) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := s.get(ctx, "/league/"+s.leagueID+"/rosters", &rosters); err != nil {
		return nil, fmt.Errorf("failed to fetch rosters: %w", err)
	}
	return rosters, nil
}

// GetUsers fetches every user in the league
func (s *SleeperService) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.get(ctx, "/league/"+s.leagueID+"/users", &users); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// GetMatchups fetches the matchups of one week; an unplayed week is empty
func (s *SleeperService) GetMatchups(ctx context.Context, week int) ([]models.Matchup, error) {
	var matchups []models.Matchup
	if err := s.get(ctx, fmt.Sprintf("/league/%s/matchups/%d", s.leagueID, week), &matchups); err != nil {
		return nil, fmt.Errorf("failed to fetch matchups for week %d: %w", week, err)
	}
	return matchups, nil
}

// GetPlayers fetches the full NFL player directory keyed by player id.
// The payload is several megabytes; callers fetch it once per run.
func (s *SleeperService) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	start := time.Now()
	var players map[string]models.Player
	if err := s.get(ctx, "/players/nfl", &players); err != nil {
		return nil, fmt.Errorf("failed to fetch player directory: %w", err)
	}
	s.logger.Infof("Loaded %d players in %v", len(players), time.Since(start).Round(time.Millisecond))
	return players, nil
}

// HealthCheck reports whether the Sleeper API answers
func (s *SleeperService) HealthCheck(ctx context.Context) bool {
	_, err := s.GetNFLState(ctx)
	return err == nil
}
