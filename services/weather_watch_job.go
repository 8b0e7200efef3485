package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"sleeper-league-bot/config"
	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// weatherLookupConcurrency bounds concurrent geocode/forecast lookups
const weatherLookupConcurrency = 4

// WeatherWatchJob flags outdoor games with risky wind at kickoff
type WeatherWatchJob struct {
	league   *LeagueService
	schedule *ScheduleService
	weather  *WeatherService
	cfg      config.WeatherConfig
	season   int
	logger   *logging.Logger
}

// NewWeatherWatchJob creates the weather watch job for a season
func NewWeatherWatchJob(league *LeagueService, schedule *ScheduleService, weather *WeatherService, cfg config.WeatherConfig, season int) *WeatherWatchJob {
	return &WeatherWatchJob{
		league:   league,
		schedule: schedule,
		weather:  weather,
		cfg:      cfg,
		season:   season,
		logger:   logging.WithPrefix("WeatherWatch"),
	}
}

func (j *WeatherWatchJob) Name() string      { return "weather" }
func (j *WeatherWatchJob) SeasonGated() bool { return false }

// Build checks the kickoff forecast of every game of the week
func (j *WeatherWatchJob) Build(ctx context.Context, params JobParams) (*models.WebhookMessage, error) {
	week := params.Week
	if week <= 0 {
		current, err := j.league.CurrentWeek(ctx)
		if err != nil {
			return nil, err
		}
		week = current
	}

	games, err := j.schedule.GamesForWeek(ctx, j.season, week, j.cfg.GameType)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return j.noScheduleMessage(week), nil
	}

	flags, err := j.evaluate(ctx, games)
	if err != nil {
		return nil, err
	}
	j.logger.Infof("Week %d: %d of %d games flagged", week, len(flags), len(games))
	return j.format(week, flags), nil
}

// evaluate looks up kickoff conditions for every non-dome game and keeps
// those over a wind threshold. A venue that cannot be geocoded, or whose
// forecast has no usable hour, is skipped.
func (j *WeatherWatchJob) evaluate(ctx context.Context, games []models.ScheduledGame) ([]models.WindFlag, error) {
	var (
		mu    sync.Mutex
		flags []models.WindFlag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weatherLookupConcurrency)
	for _, game := range games {
		game := game
		if game.IsDome() {
			continue
		}
		g.Go(func() error {
			conditions, ok, err := j.kickoffConditions(gctx, game)
			if err != nil || !ok {
				return err
			}
			if !j.Risky(conditions) {
				return nil
			}
			mu.Lock()
			flags = append(flags, models.WindFlag{Game: game, Conditions: conditions})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortWindFlags(flags)
	return flags, nil
}

func (j *WeatherWatchJob) kickoffConditions(ctx context.Context, game models.ScheduledGame) (models.KickoffConditions, bool, error) {
	stadium := game.Stadium
	if stadium == "" {
		stadium = game.Home + " stadium"
	}

	point, err := j.weather.Geocode(ctx, stadium, game.Location)
	if err != nil {
		return models.KickoffConditions{}, false, err
	}
	if point == nil {
		return models.KickoffConditions{}, false, nil
	}

	forecast, err := j.weather.HourlyForecast(ctx, point, game.Gameday)
	if err != nil {
		return models.KickoffConditions{}, false, err
	}
	idx := FindKickIndex(forecast.Times, game.Gameday, game.Gametime)
	if idx < 0 {
		j.logger.Warnf("No forecast hours for %s on %s", game.Matchup(), game.Gameday)
		return models.KickoffConditions{}, false, nil
	}
	return forecast.At(idx), true, nil
}

// Risky reports whether conditions cross the sustained or gust threshold
func (j *WeatherWatchJob) Risky(c models.KickoffConditions) bool {
	return c.WindMPH >= j.cfg.WindSustainedMPH || c.GustMPH >= j.cfg.WindGustMPH
}

// SortWindFlags orders flags by gust then sustained wind, strongest first
func SortWindFlags(flags []models.WindFlag) {
	sort.SliceStable(flags, func(a, b int) bool {
		fa, fb := flags[a].Conditions, flags[b].Conditions
		if fa.GustMPH != fb.GustMPH {
			return fa.GustMPH > fb.GustMPH
		}
		if fa.WindMPH != fb.WindMPH {
			return fa.WindMPH > fb.WindMPH
		}
		return flags[a].Game.Matchup() < flags[b].Game.Matchup()
	})
}

// WindEmoji picks the field icon for a game
func WindEmoji(roof string, wind, gust float64) string {
	switch {
	case (models.ScheduledGame{Roof: roof}).IsDome():
		return "🏟️"
	case gust >= 35:
		return "🌬️💥"
	case wind >= 20 || gust >= 30:
		return "🌬️"
	default:
		return "🌤️"
	}
}

func (j *WeatherWatchJob) title(week int) string {
	return fmt.Sprintf("Wind & Weather Watch — Week %d", week)
}

func (j *WeatherWatchJob) noScheduleMessage(week int) *models.WebhookMessage {
	return &models.WebhookMessage{Embeds: []models.Embed{{
		Title:       j.title(week),
		Description: "No schedule found for this week. (If this is preseason or playoffs, expand GAME_TYPE.)",
	}}}
}

func (j *WeatherWatchJob) format(week int, flags []models.WindFlag) *models.WebhookMessage {
	if len(flags) == 0 {
		return &models.WebhookMessage{Embeds: []models.Embed{{
			Title:       j.title(week),
			Description: "All clear ✅ — no risky wind at kickoff for outdoor games.",
			Footer: &models.EmbedFooter{Text: fmt.Sprintf("Thresholds: ≥%.0f mph sustained or ≥%.0f mph gusts (ET kickoff)",
				j.cfg.WindSustainedMPH, j.cfg.WindGustMPH)},
		}}}
	}

	limit := j.cfg.MaxFlagged
	if limit <= 0 || limit > models.MaxEmbedFields {
		limit = models.MaxEmbedFields
	}
	if len(flags) > limit {
		flags = flags[:limit]
	}

	fields := make([]models.EmbedField, 0, len(flags))
	for _, f := range flags {
		fields = append(fields, j.field(f))
	}

	return &models.WebhookMessage{Embeds: []models.Embed{{
		Title: j.title(week),
		Description: fmt.Sprintf("Flagging games with **≥%.0f mph** sustained or **≥%.0f mph** gusts at ET kickoff.",
			j.cfg.WindSustainedMPH, j.cfg.WindGustMPH),
		Fields: fields,
		Footer: &models.EmbedFooter{Text: "Forecast: Open-Meteo. Schedule: nflverse. Domes skipped; retractables included."},
	}}}
}

func (j *WeatherWatchJob) field(f models.WindFlag) models.EmbedField {
	game, c := f.Game, f.Conditions

	var venue []string
	for _, part := range []string{game.Stadium, game.Location} {
		if part != "" {
			venue = append(venue, part)
		}
	}
	roofNote := ""
	if game.IsRetractable() {
		roofNote = " (retractable)"
	}
	rain := ""
	if c.PrecipPct >= j.cfg.PrecipPct {
		rain = fmt.Sprintf(" • Rain chance %.0f%%", c.PrecipPct)
	}

	value := fmt.Sprintf("%s%s\nSustained **%.0f mph**, Gusts **%.0f mph**%s",
		strings.Join(venue, " — "), roofNote, c.WindMPH, c.GustMPH, rain)
	return models.EmbedField{
		Name:  fmt.Sprintf("%s  %s • %s ET", WindEmoji(game.Roof, c.WindMPH, c.GustMPH), game.Matchup(), game.Gametime),
		Value: models.Truncate(value, models.MaxFieldValueLength),
	}
}
