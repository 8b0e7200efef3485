package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

func TestMovementClass(t *testing.T) {
	assert.Equal(t, "move-up", movementClass(models.RankMovement{Delta: 2, Known: true}))
	assert.Equal(t, "move-down", movementClass(models.RankMovement{Delta: -1, Known: true}))
	assert.Equal(t, "move-flat", movementClass(models.RankMovement{Known: true}))
	assert.Equal(t, "move-new", movementClass(models.RankMovement{}))
}

func TestScoreWidthClamps(t *testing.T) {
	assert.Equal(t, "0%", scoreWidth(-3))
	assert.Equal(t, "57%", scoreWidth(57.2))
	assert.Equal(t, "100%", scoreWidth(140))
}

func TestLoadRendersRankings(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	type row struct {
		Rank          int
		Team          string
		Score         float64
		Record        string
		PointsPerGame float64
		Movement      models.RankMovement
		MovementLabel string
	}
	data := struct {
		Title       string
		ThroughWeek int
		Rows        []row
	}{
		Title:       "Power Rankings",
		ThroughWeek: 4,
		Rows: []row{
			{Rank: 1, Team: "Alpha <Dogs>", Score: 100, Record: "4-0", PointsPerGame: 131.25, Movement: models.RankMovement{Delta: 1, Known: true}, MovementLabel: "up 1"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "rankings.html", data))
	out := buf.String()
	assert.Contains(t, out, "through Week 4")
	assert.Contains(t, out, "Alpha &lt;Dogs&gt;")
	assert.Contains(t, out, "131.2")
	assert.Contains(t, out, `class="move-up"`)
}

func TestLoadRendersEmptyState(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "rankings.html", struct {
		Title       string
		ThroughWeek int
		Rows        []struct{}
	}{Title: "Power Rankings"}))
	assert.Contains(t, buf.String(), "No completed weeks yet.")
}
