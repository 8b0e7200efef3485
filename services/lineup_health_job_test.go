package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

func TestCanonicalTag(t *testing.T) {
	cases := map[string]string{
		"questionable": "Questionable",
		"OUT":          "Out",
		"ir":           "IR",
		" Gtd ":        "GTD",
		"Suspended":    "Suspended",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalTag(in), in)
	}
}

func TestCheckLineups(t *testing.T) {
	rosters := []models.Roster{
		{RosterID: 2, Starters: []string{"p3"}},
		{RosterID: 1, Starters: []string{"p1", "p2", "missing"}},
		{RosterID: 3, Starters: nil},
	}
	players := map[string]models.Player{
		"p1": {FullName: "Patrick Mahomes", Position: "QB", Team: "KC", InjuryStatus: "Questionable"},
		"p2": {FirstName: "Travis", LastName: "Kelce", FantasyPositions: []string{"TE"}, Team: "KC", Status: "Out"},
		"p3": {FullName: "Christian McCaffrey", Position: "RB", Team: "SF", Status: "Active"},
	}

	reports := CheckLineups(rosters, map[int]string{1: "Synergy Squad"}, players)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "Synergy Squad", report.TeamName)
	require.Len(t, report.Critical, 1)
	require.Len(t, report.Risky, 1)
	assert.Equal(t, "Travis Kelce (KC TE) — Out", report.Critical[0].Label)
	assert.Equal(t, "Patrick Mahomes (KC QB) — Questionable", report.Risky[0].Label)
}

func TestFormatLineupMessage(t *testing.T) {
	clear := FormatLineupMessage(nil)
	require.Len(t, clear.Embeds, 1)
	assert.Contains(t, clear.Embeds[0].Description, "All clear ✅")
	assert.NotNil(t, clear.Embeds[0].Footer)

	var alerts []models.StarterAlert
	for i := 0; i < 60; i++ {
		alerts = append(alerts, models.StarterAlert{Label: strings.Repeat("y", 30) + " — Out", Severity: models.SeverityCritical})
	}
	msg := FormatLineupMessage([]models.TeamHealthReport{{RosterID: 1, TeamName: "bob", Critical: alerts}})
	field := msg.Embeds[0].Fields[0]
	assert.Equal(t, "bob", field.Name)
	assert.True(t, strings.HasPrefix(field.Value, "**Critical (bench these)**:\n• "))
	assert.LessOrEqual(t, len([]rune(field.Value)), models.MaxFieldValueLength)
}

func TestLineupHealthJobBuild(t *testing.T) {
	_, league := newTestLeague(t)

	msg, err := NewLineupHealthJob(league).Build(context.Background(), JobParams{})
	require.NoError(t, err)
	require.Len(t, msg.Embeds, 1)

	fields := msg.Embeds[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "Synergy Squad", fields[0].Name)
	assert.Contains(t, fields[0].Value, "Patrick Mahomes (KC QB) — Questionable")
	assert.Equal(t, "bob", fields[1].Name)
	assert.Contains(t, fields[1].Value, "Christian McCaffrey (SF RB) — IR")
}
