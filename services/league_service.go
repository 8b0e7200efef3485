package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// LeagueService turns raw Sleeper responses into league-level views: weekly
// ranking rows, team display names and the latest played week.
type LeagueService struct {
	sleeper *SleeperService
	logger  *logging.Logger
}

// NewLeagueService creates a league service over a Sleeper client
func NewLeagueService(sleeper *SleeperService) *LeagueService {
	return &LeagueService{
		sleeper: sleeper,
		logger:  logging.WithPrefix("League"),
	}
}

// Sleeper exposes the underlying client
func (s *LeagueService) Sleeper() *SleeperService {
	return s.sleeper
}

// WeeklyResults returns one ranking row per roster for the week
func (s *LeagueService) WeeklyResults(ctx context.Context, week int) ([]models.WeeklyMatchRow, error) {
	matchups, err := s.sleeper.GetMatchups(ctx, week)
	if err != nil {
		return nil, err
	}
	rows := make([]models.WeeklyMatchRow, 0, len(matchups))
	for _, m := range matchups {
		rows = append(rows, m.ToWeeklyRow())
	}
	return rows, nil
}

// CurrentWeek returns Sleeper's current NFL week
func (s *LeagueService) CurrentWeek(ctx context.Context) (int, error) {
	state, err := s.sleeper.GetNFLState(ctx)
	if err != nil {
		return 0, err
	}
	return state.CurrentWeek(), nil
}

// LatestWeekWithMatchups walks back from start to week 1 and returns the
// first week that has matchups. Week 0 means no week has any.
func (s *LeagueService) LatestWeekWithMatchups(ctx context.Context, start int) (int, []models.Matchup, error) {
	for week := start; week >= 1; week-- {
		matchups, err := s.sleeper.GetMatchups(ctx, week)
		if err != nil {
			return 0, nil, err
		}
		if len(matchups) > 0 {
			s.logger.Debugf("Latest week with matchups: %d (started at %d)", week, start)
			return week, matchups, nil
		}
	}
	return 0, nil, nil
}

// Rosters returns the league rosters alongside a roster id to team name map
func (s *LeagueService) Rosters(ctx context.Context) ([]models.Roster, map[int]string, error) {
	var (
		rosters []models.Roster
		users   []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosters, err = s.sleeper.GetRosters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.sleeper.GetUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load league members: %w", err)
	}

	return rosters, TeamNameIndex(rosters, users), nil
}

// TeamNames returns roster id to display name
func (s *LeagueService) TeamNames(ctx context.Context) (map[int]string, error) {
	_, names, err := s.Rosters(ctx)
	return names, err
}

// TeamNameIndex maps each roster to its owner's team name, falling back to
// "Roster N" for unowned rosters or owners without a name
func TeamNameIndex(rosters []models.Roster, users []models.User) map[int]string {
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}

	names := make(map[int]string, len(rosters))
	for _, r := range rosters {
		name := byID[r.OwnerID].TeamName()
		if name == "" {
			name = models.RosterLabel(r.RosterID)
		}
		names[r.RosterID] = name
	}
	return names
}

// TeamName looks up a display name with the roster fallback
func TeamName(names map[int]string, rosterID int) string {
	if name, ok := names[rosterID]; ok && name != "" {
		return name
	}
	return models.RosterLabel(rosterID)
}
