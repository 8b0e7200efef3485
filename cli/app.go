package cli

import (
	"context"
	"fmt"

	"sleeper-league-bot/config"
	"sleeper-league-bot/database"
	"sleeper-league-bot/logging"
	"sleeper-league-bot/rankings"
	"sleeper-league-bot/services"
)

// app holds the services shared by every command
type app struct {
	cfg      *config.Config
	sleeper  *services.SleeperService
	league   *services.LeagueService
	engine   *rankings.Engine
	rankings *services.RankingsJob
	runner   *services.JobRunner
	db       *database.MongoDB
	posts    *database.MongoPostRepository
	logger   *logging.Logger
}

// newApp builds the service graph. The post archive is connected only when
// enabled; a failed connection is an error rather than a silent fallback.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, logger: logging.WithPrefix("App")}

	a.sleeper = services.NewSleeperService(cfg.Sleeper.BaseURL, cfg.Sleeper.LeagueID, cfg.Sleeper.Timeout)
	a.league = services.NewLeagueService(a.sleeper)
	a.engine = rankings.NewEngine(a.league)
	a.rankings = services.NewRankingsJob(a.league, a.engine)

	schedule := services.NewScheduleService(cfg.Weather.ScheduleURL, cfg.Sleeper.Timeout)
	weather := services.NewWeatherService(cfg.Weather.ForecastURL, cfg.Weather.GeocodeURL, cfg.Sleeper.Timeout)

	discord := services.NewDiscordService(cfg.Discord.WebhookURL, cfg.Discord.DryRun)
	window := services.NewSeasonWindow(cfg.Season.Start, cfg.Season.End, cfg.Location())

	a.runner = services.NewJobRunner(discord, window)
	a.runner.Register(
		services.NewRecapJob(a.league, a.engine),
		services.NewLineupHealthJob(a.league),
		services.NewWeatherWatchJob(a.league, schedule, weather, cfg.Weather, cfg.Season.Year),
		a.rankings,
	)

	if cfg.ArchiveEnabled() {
		db, err := database.NewMongoConnection(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect post archive: %w", err)
		}
		posts := database.NewMongoPostRepository(db)
		if err := posts.EnsureIndexes(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare post archive: %w", err)
		}
		a.db = db
		a.posts = posts
		a.runner.SetArchive(posts)
		a.logger.Infof("Archiving job results to MongoDB")
	}

	return a, nil
}

// Close releases the archive connection, if any
func (a *app) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warnf("Closing archive: %v", err)
	}
}
