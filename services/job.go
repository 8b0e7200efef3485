package services

import (
	"context"
	"fmt"
	"strings"

	"sleeper-league-bot/models"
	"sleeper-league-bot/rankings"
)

// JobParams are per-run inputs shared by every job
type JobParams struct {
	// Week overrides the week the job reports on; 0 uses the current week
	Week int
}

// Job builds one notification message
type Job interface {
	Name() string
	// SeasonGated jobs only post inside the season window
	SeasonGated() bool
	Build(ctx context.Context, params JobParams) (*models.WebhookMessage, error)
}

// FormatRankingLines renders a ranking snapshot, one line per team, with
// each team's movement against the prior snapshot
func FormatRankingLines(snapshot *rankings.Snapshot, names map[int]string) []string {
	if snapshot == nil || snapshot.Current.Len() == 0 {
		return nil
	}

	moves := make(map[int]models.RankMovement, len(snapshot.Movements))
	for _, m := range snapshot.Movements {
		moves[m.TeamID] = m
	}

	lines := make([]string, 0, snapshot.Current.Len())
	for _, e := range snapshot.Current.Entries {
		lines = append(lines, fmt.Sprintf("`%2d.` **%s** %.1f (%s, %.1f PPG) %s",
			e.Rank, TeamName(names, e.TeamID), e.Score, e.Record, e.PointsPerGame, moves[e.TeamID].Symbol()))
	}
	return lines
}

// rankingsHeading is the section title for a ranking through week
func rankingsHeading(week int) string {
	return fmt.Sprintf("📈 **Power Rankings (through Week %d)**", week)
}

// joinContent joins lines and fits the result into one Discord message
func joinContent(lines []string) string {
	return models.Truncate(strings.Join(lines, "\n"), models.MaxContentLength)
}
