package rankings

import (
	"math"
	"sort"

	"sleeper-league-bot/models"
)

// metricWeight pairs a derived metric with its share of the composite score
type metricWeight struct {
	name   string
	weight float64
	value  func(models.DerivedMetrics) float64
}

var compositeWeights = []metricWeight{
	{"win_pct", 0.35, func(m models.DerivedMetrics) float64 { return m.WinPct }},
	{"points_per_game", 0.25, func(m models.DerivedMetrics) float64 { return m.PointsPerGame }},
	{"point_diff_per_game", 0.15, func(m models.DerivedMetrics) float64 { return m.PointDiffPerGame }},
	{"recent_form", 0.15, func(m models.DerivedMetrics) float64 { return m.RecentForm }},
	{"strength_of_schedule", 0.10, func(m models.DerivedMetrics) float64 { return m.StrengthOfSchedule }},
}

// Weights returns the composite weight of each metric, keyed by metric name
func Weights() map[string]float64 {
	weights := make(map[string]float64, len(compositeWeights))
	for _, w := range compositeWeights {
		weights[w.name] = w.weight
	}
	return weights
}

// Compose blends the z-scored derived metrics of every record into one
// composite per team, scales the composites onto 0-100 with one decimal, and
// orders the teams. Equal composites are ordered by team id ascending.
// Records must already carry their derived metrics.
func Compose(records map[int]*models.TeamSeasonRecord, throughWeek int) *models.PowerRanking {
	ranking := &models.PowerRanking{ThroughWeek: throughWeek, Entries: []models.PowerRankingEntry{}}
	if len(records) == 0 {
		return ranking
	}

	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	composites := make([]float64, len(ids))
	values := make([]float64, len(ids))
	for _, metric := range compositeWeights {
		for i, id := range ids {
			values[i] = metric.value(records[id].Metrics)
		}
		z := ZScore(values)
		for i := range ids {
			composites[i] += metric.weight * z(values[i])
		}
	}

	scale := MinMax(composites)
	for i, id := range ids {
		record := records[id]
		ranking.Entries = append(ranking.Entries, models.PowerRankingEntry{
			TeamID:        id,
			Score:         displayScore(scale(composites[i])),
			Composite:     composites[i],
			Record:        record.RecordString(),
			Wins:          record.Wins,
			Losses:        record.Losses,
			PointsPerGame: record.Metrics.PointsPerGame,
		})
	}

	sort.SliceStable(ranking.Entries, func(i, j int) bool {
		a, b := ranking.Entries[i], ranking.Entries[j]
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		return a.TeamID < b.TeamID
	})
	for i := range ranking.Entries {
		ranking.Entries[i].Rank = i + 1
	}
	return ranking
}

// displayScore maps a 0-1 scaled value onto 0-100 rounded to one decimal
func displayScore(scaled float64) float64 {
	return math.Round(scaled*1000) / 10
}
