package rankings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

func TestComposeWeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, w := range Weights() {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.Equal(t, 0.35, Weights()["win_pct"])
}

func TestRankTwoTeamsOneWeek(t *testing.T) {
	ranking := RankThroughWeek(map[int][]models.WeeklyMatchRow{1: pair(1, 2, 80, 1, 120)}, 1)

	require.Equal(t, 2, ranking.Len())
	first, second := ranking.Entries[0], ranking.Entries[1]

	assert.Equal(t, 1, first.TeamID)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "1-0", first.Record)
	assert.Equal(t, 120.0, first.PointsPerGame)
	assert.Equal(t, 100.0, first.Score)

	assert.Equal(t, 2, second.TeamID)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, "0-1", second.Record)
	assert.Equal(t, 0.0, second.Score)
	assert.Greater(t, first.Score, second.Score)
}

func TestComposeSingleTeamScoresMidpoint(t *testing.T) {
	ranking := RankThroughWeek(map[int][]models.WeeklyMatchRow{1: {{TeamID: 5, Points: 100}}}, 1)

	require.Equal(t, 1, ranking.Len())
	assert.Equal(t, 50.0, ranking.Entries[0].Score)
	assert.Equal(t, 1, ranking.Entries[0].Rank)
}

func TestComposeEmptyPopulation(t *testing.T) {
	ranking := RankThroughWeek(nil, 3)
	assert.Equal(t, 3, ranking.ThroughWeek)
	assert.Zero(t, ranking.Len())
	assert.NotNil(t, ranking.Entries)
}

func TestComposeTieBreaksOnTeamID(t *testing.T) {
	weeks := map[int][]models.WeeklyMatchRow{
		1: append(pair(1, 7, 100, 3, 100), pair(2, 12, 100, 9, 100)...),
	}
	ranking := RankThroughWeek(weeks, 1)

	assert.Equal(t, []int{3, 7, 9, 12}, ranking.TeamIDs())
	for _, e := range ranking.Entries {
		assert.Equal(t, 50.0, e.Score)
	}
}

func TestComposeScoresWithinDisplayRange(t *testing.T) {
	ranking := RankThroughWeek(sampleSeason(), 3)

	require.Equal(t, 4, ranking.Len())
	assert.Equal(t, 100.0, ranking.Entries[0].Score)
	assert.Equal(t, 0.0, ranking.Entries[3].Score)
	for i, e := range ranking.Entries {
		assert.Equal(t, i+1, e.Rank)
		assert.GreaterOrEqual(t, e.Score, 0.0)
		assert.LessOrEqual(t, e.Score, 100.0)
		assert.Equal(t, e.Score, float64(int(e.Score*10+0.5))/10, "one decimal")
		if i > 0 {
			assert.GreaterOrEqual(t, ranking.Entries[i-1].Composite, e.Composite)
		}
	}
}

func TestRankingIsDeterministic(t *testing.T) {
	first, err := json.Marshal(RankThroughWeek(sampleSeason(), 3))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := json.Marshal(RankThroughWeek(sampleSeason(), 3))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func sampleSeason() map[int][]models.WeeklyMatchRow {
	return map[int][]models.WeeklyMatchRow{
		1: append(pair(1, 1, 131.2, 2, 98.4), pair(2, 3, 104.9, 4, 111.0)...),
		2: append(pair(1, 1, 117.6, 3, 120.3), pair(2, 2, 89.1, 4, 102.7)...),
		3: append(pair(1, 1, 142.0, 4, 95.5), pair(2, 2, 101.8, 3, 99.9)...),
	}
}
