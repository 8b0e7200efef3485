package services

import (
	"context"
	"fmt"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
	"sleeper-league-bot/rankings"
)

// RankingsJob posts the power rankings on their own
type RankingsJob struct {
	league *LeagueService
	engine *rankings.Engine
	logger *logging.Logger
}

// NewRankingsJob creates the standalone power rankings job
func NewRankingsJob(league *LeagueService, engine *rankings.Engine) *RankingsJob {
	return &RankingsJob{
		league: league,
		engine: engine,
		logger: logging.WithPrefix("RankingsJob"),
	}
}

func (j *RankingsJob) Name() string      { return "rankings" }
func (j *RankingsJob) SeasonGated() bool { return true }

// Build ranks through the requested week, or the latest week with matchups
func (j *RankingsJob) Build(ctx context.Context, params JobParams) (*models.WebhookMessage, error) {
	snapshot, names, err := j.Snapshot(ctx, params.Week)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return &models.WebhookMessage{Content: "📈 **Power Rankings**\nNo completed weeks yet."}, nil
	}

	lines := append([]string{rankingsHeading(snapshot.Current.ThroughWeek)}, FormatRankingLines(snapshot, names)...)
	return &models.WebhookMessage{Content: joinContent(lines)}, nil
}

// Snapshot returns the ranking snapshot and team names for a week; see LoadRankings
func (j *RankingsJob) Snapshot(ctx context.Context, week int) (*rankings.Snapshot, map[int]string, error) {
	return LoadRankings(ctx, j.league, j.engine, week)
}

// LoadRankings resolves the week to rank (the latest week with matchups
// when week is 0), computes the snapshot and loads team names. A nil
// snapshot means no week has matchups yet.
func LoadRankings(ctx context.Context, league *LeagueService, engine *rankings.Engine, week int) (*rankings.Snapshot, map[int]string, error) {
	if week <= 0 {
		current, err := league.CurrentWeek(ctx)
		if err != nil {
			return nil, nil, err
		}
		week, _, err = league.LatestWeekWithMatchups(ctx, current)
		if err != nil {
			return nil, nil, err
		}
		if week == 0 {
			return nil, nil, nil
		}
	}

	snapshot, err := engine.ComputeWithPrior(ctx, week)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute power rankings: %w", err)
	}
	names, err := league.TeamNames(ctx)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, names, nil
}
