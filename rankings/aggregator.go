// Package rankings computes season-to-date power rankings from weekly
// head-to-head results.
//
// The computation is a pure, single-threaded pipeline over fully fetched
// input: Aggregate folds weekly rows into per-team records, DeriveMetrics
// computes per-game metrics and strength of schedule, Compose z-scores and
// blends those metrics into a 0-100 score, and Movements compares two
// snapshots.
package rankings

import (
	"sort"

	"sleeper-league-bot/models"
)

// RecentFormWindow is the number of trailing history entries averaged into
// recent form. Bye weeks leave no history entry, so the window spans the
// team's last three played weeks rather than the last three calendar weeks.
const RecentFormWindow = 3

// Aggregate folds weeks 1..throughWeek into a freshly built map of team id to
// season record. Weeks are folded in ascending order so each team's History is
// chronological. Rows sharing a matchup id form a group; only groups of
// exactly two teams produce opponent, win/loss and point-against data.
func Aggregate(weeks map[int][]models.WeeklyMatchRow, throughWeek int) map[int]*models.TeamSeasonRecord {
	records := make(map[int]*models.TeamSeasonRecord)
	for _, week := range weeksThrough(weeks, throughWeek) {
		foldWeek(records, week, weeks[week])
	}
	return records
}

func weeksThrough(weeks map[int][]models.WeeklyMatchRow, throughWeek int) []int {
	ordered := make([]int, 0, len(weeks))
	for week := range weeks {
		if week >= 1 && week <= throughWeek {
			ordered = append(ordered, week)
		}
	}
	sort.Ints(ordered)
	return ordered
}

func foldWeek(records map[int]*models.TeamSeasonRecord, week int, rows []models.WeeklyMatchRow) {
	for _, group := range groupRows(rows) {
		for _, row := range group {
			record := records[row.TeamID]
			if record == nil {
				record = &models.TeamSeasonRecord{TeamID: row.TeamID}
				records[row.TeamID] = record
			}
			record.GamesPlayed++
			record.PointsFor += row.Points
			record.History = append(record.History, models.WeekPoints{Week: week, Points: row.Points})
		}

		if len(group) != 2 {
			continue
		}
		home, away := group[0], group[1]
		applyResult(records[home.TeamID], home, away)
		applyResult(records[away.TeamID], away, home)
	}
}

// groupRows splits a week's rows into matchup groups in first-seen order.
// A row without a matchup id is a group of its own.
func groupRows(rows []models.WeeklyMatchRow) [][]models.WeeklyMatchRow {
	groups := make([][]models.WeeklyMatchRow, 0, len(rows)/2+1)
	index := make(map[int]int)

	for _, row := range rows {
		if !row.Grouped {
			groups = append(groups, []models.WeeklyMatchRow{row})
			continue
		}
		if i, ok := index[row.MatchupID]; ok {
			groups[i] = append(groups[i], row)
			continue
		}
		index[row.MatchupID] = len(groups)
		groups = append(groups, []models.WeeklyMatchRow{row})
	}
	return groups
}

// applyResult records one side of a head-to-head pair. Equal points are a tie:
// neither a win nor a loss, but the game still counts toward GamesPlayed.
func applyResult(record *models.TeamSeasonRecord, own, opponent models.WeeklyMatchRow) {
	record.PointsAgainst += opponent.Points
	record.PointDiff += own.Points - opponent.Points
	record.Opponents = append(record.Opponents, opponent.TeamID)

	switch {
	case own.Points > opponent.Points:
		record.Wins++
	case own.Points < opponent.Points:
		record.Losses++
	}
}

// DeriveMetrics fills Metrics on every record. Per-game metrics are finalized
// for all teams before strength of schedule reads opponents' points per game.
func DeriveMetrics(records map[int]*models.TeamSeasonRecord) {
	for _, record := range records {
		record.Metrics = models.DerivedMetrics{
			PointsPerGame:    perGame(record.PointsFor, record.GamesPlayed),
			PointDiffPerGame: perGame(record.PointDiff, record.GamesPlayed),
			WinPct:           perGame(float64(record.Wins), record.GamesPlayed),
			RecentForm:       recentForm(record.History, RecentFormWindow),
		}
	}

	for _, record := range records {
		if len(record.Opponents) == 0 {
			continue
		}
		total := 0.0
		for _, opponentID := range record.Opponents {
			if opponent := records[opponentID]; opponent != nil {
				total += opponent.Metrics.PointsPerGame
			}
		}
		record.Metrics.StrengthOfSchedule = total / float64(len(record.Opponents))
	}
}

// BuildRecords runs Aggregate then DeriveMetrics
func BuildRecords(weeks map[int][]models.WeeklyMatchRow, throughWeek int) map[int]*models.TeamSeasonRecord {
	records := Aggregate(weeks, throughWeek)
	DeriveMetrics(records)
	return records
}

func perGame(total float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

func recentForm(history []models.WeekPoints, window int) float64 {
	if len(history) == 0 {
		return 0
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	total := 0.0
	for _, wp := range history {
		total += wp.Points
	}
	return total / float64(len(history))
}
