package rankings

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// DefaultFetchConcurrency bounds the number of weeks fetched at once
const DefaultFetchConcurrency = 4

// ResultSource supplies the weekly head-to-head rows the engine ranks.
// A week without data returns an empty slice and no error.
type ResultSource interface {
	WeeklyResults(ctx context.Context, week int) ([]models.WeeklyMatchRow, error)
}

// Snapshot is a ranking through a week alongside the ranking through the
// week before it and the movement between the two.
type Snapshot struct {
	Current   *models.PowerRanking  `json:"current"`
	Prior     *models.PowerRanking  `json:"prior,omitempty"`
	Movements []models.RankMovement `json:"movements"`
}

// Engine fetches weekly results from a ResultSource and ranks them
type Engine struct {
	source      ResultSource
	concurrency int
	logger      *logging.Logger
}

// NewEngine creates an engine backed by source
func NewEngine(source ResultSource) *Engine {
	return &Engine{
		source:      source,
		concurrency: DefaultFetchConcurrency,
		logger:      logging.WithPrefix("Rankings"),
	}
}

// SetConcurrency changes how many weeks are fetched in parallel
func (e *Engine) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	e.concurrency = n
}

// FetchWeeks retrieves weeks 1..throughWeek. The returned map is complete
// before it is handed back; any failed week fails the whole fetch.
func (e *Engine) FetchWeeks(ctx context.Context, throughWeek int) (map[int][]models.WeeklyMatchRow, error) {
	if throughWeek < 1 {
		return map[int][]models.WeeklyMatchRow{}, nil
	}

	results := make([][]models.WeeklyMatchRow, throughWeek+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for week := 1; week <= throughWeek; week++ {
		week := week
		g.Go(func() error {
			rows, err := e.source.WeeklyResults(gctx, week)
			if err != nil {
				return fmt.Errorf("week %d: %w", week, err)
			}
			results[week] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch weekly results: %w", err)
	}

	weeks := make(map[int][]models.WeeklyMatchRow, throughWeek)
	for week := 1; week <= throughWeek; week++ {
		weeks[week] = results[week]
	}
	e.logger.Debugf("Fetched %d weeks of results", throughWeek)
	return weeks, nil
}

// ComputeRankingsThroughWeek ranks every team on weeks 1..n
func (e *Engine) ComputeRankingsThroughWeek(ctx context.Context, n int) (*models.PowerRanking, error) {
	weeks, err := e.FetchWeeks(ctx, n)
	if err != nil {
		return nil, err
	}
	ranking := RankThroughWeek(weeks, n)
	e.logger.Infof("Ranked %d teams through week %d", ranking.Len(), n)
	return ranking, nil
}

// ComputeWithPrior ranks through week n and through week n-1 from a single
// fetch. Prior is nil when n is 1 or less.
func (e *Engine) ComputeWithPrior(ctx context.Context, n int) (*Snapshot, error) {
	weeks, err := e.FetchWeeks(ctx, n)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{Current: RankThroughWeek(weeks, n)}
	if n > 1 {
		snapshot.Prior = RankThroughWeek(weeks, n-1)
	}
	snapshot.Movements = ComputeMovements(snapshot.Current, snapshot.Prior)

	e.logger.Infof("Ranked %d teams through week %d (prior: %d teams)",
		snapshot.Current.Len(), n, snapshot.Prior.Len())
	return snapshot, nil
}

// RankThroughWeek is the pure ranking pipeline over already-fetched weeks
func RankThroughWeek(weeks map[int][]models.WeeklyMatchRow, n int) *models.PowerRanking {
	return Compose(BuildRecords(weeks, n), n)
}

// ComputeMovements returns the movement of each current entry against prior
func ComputeMovements(current, prior *models.PowerRanking) []models.RankMovement {
	return Movements(current, prior)
}
