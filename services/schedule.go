package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// DefaultKickoff is used when a schedule row has no kickoff time
const DefaultKickoff = "13:00"

// scheduleColumns lists accepted header names per field, in preference order
var scheduleColumns = map[string][]string{
	"season":   {"season", "Season"},
	"week":     {"week", "Week"},
	"gameType": {"game_type", "game_type_full", "gm_type", "Type"},
	"gameday":  {"gameday", "gametime_date", "gamedate", "game_date"},
	"gametime": {"gametime", "game_time_eastern", "game_time_et", "kickoff_time_eastern"},
	"home":     {"home_team", "home"},
	"away":     {"away_team", "away"},
	"stadium":  {"stadium", "venue"},
	"location": {"location", "city"},
	"roof":     {"roof", "roof_type"},
}

// ScheduleService reads the nflverse games CSV
type ScheduleService struct {
	client *http.Client
	url    string
	logger *logging.Logger
}

// NewScheduleService creates a schedule reader for the CSV at url
func NewScheduleService(url string, timeout time.Duration) *ScheduleService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScheduleService{
		client: &http.Client{Timeout: timeout},
		url:    url,
		logger: logging.WithPrefix("Schedule"),
	}
}

// GamesForWeek returns the games of one season, week and game type
func (s *ScheduleService) GamesForWeek(ctx context.Context, season, week int, gameType string) ([]models.ScheduledGame, error) {
	body, err := fetch(ctx, s.client, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	games, err := ParseSchedule(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	filtered := FilterGames(games, season, week, gameType)
	s.logger.Infof("Schedule has %d games, %d for season %d week %d (%s)",
		len(games), len(filtered), season, week, gameType)
	return filtered, nil
}

// FilterGames keeps games matching season, week and (case-insensitive) game type
func FilterGames(games []models.ScheduledGame, season, week int, gameType string) []models.ScheduledGame {
	var out []models.ScheduledGame
	for _, g := range games {
		if g.Season == season && g.Week == week && strings.EqualFold(g.GameType, gameType) {
			out = append(out, g)
		}
	}
	return out
}

// ParseSchedule reads a header-led schedule CSV. Short rows and unknown
// columns are tolerated; a non-numeric season or week reads as 0.
func ParseSchedule(r io.Reader) ([]models.ScheduledGame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: schedule header: %v", ErrMalformedResponse, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var games []models.ScheduledGame
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: schedule row: %v", ErrMalformedResponse, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		col := func(field string) string {
			for _, name := range scheduleColumns[field] {
				if i, ok := index[name]; ok && i < len(record) {
					if v := strings.TrimSpace(record[i]); v != "" {
						return v
					}
				}
			}
			return ""
		}

		season, _ := strconv.Atoi(col("season"))
		week, _ := strconv.Atoi(col("week"))
		kickoff := col("gametime")
		if kickoff == "" {
			kickoff = DefaultKickoff
		}

		games = append(games, models.ScheduledGame{
			Season:   season,
			Week:     week,
			GameType: strings.ToUpper(col("gameType")),
			Gameday:  col("gameday"),
			Gametime: kickoff,
			Home:     col("home"),
			Away:     col("away"),
			Stadium:  col("stadium"),
			Location: col("location"),
			Roof:     col("roof"),
		})
	}
	return games, nil
}
