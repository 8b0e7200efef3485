package models

import (
	"fmt"
)

// WeeklyMatchRow is one team's result in one scheduled week.
// Grouped is false when the upstream row had no matchup id; such a row is
// treated as a group of its own.
type WeeklyMatchRow struct {
	TeamID    int     `json:"team_id"`
	Points    float64 `json:"points"`
	MatchupID int     `json:"matchup_id"`
	Grouped   bool    `json:"grouped"`
}

// WeekPoints is one entry of a team's chronological scoring history
type WeekPoints struct {
	Week   int     `json:"week"`
	Points float64 `json:"points"`
}

// DerivedMetrics are computed once per team after all weeks are folded in
type DerivedMetrics struct {
	PointsPerGame      float64 `json:"points_per_game"`
	PointDiffPerGame   float64 `json:"point_diff_per_game"`
	WinPct             float64 `json:"win_pct"`
	RecentForm         float64 `json:"recent_form"`
	StrengthOfSchedule float64 `json:"strength_of_schedule"`
}

// TeamSeasonRecord holds season-to-date totals for one team
type TeamSeasonRecord struct {
	TeamID        int            `json:"team_id"`
	GamesPlayed   int            `json:"games_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	PointsFor     float64        `json:"points_for"`
	PointsAgainst float64        `json:"points_against"`
	PointDiff     float64        `json:"point_diff"`
	History       []WeekPoints   `json:"history"`
	Opponents     []int          `json:"opponents"`
	Metrics       DerivedMetrics `json:"metrics"`
}

// RecordString formats the record as "W-L"
func (r *TeamSeasonRecord) RecordString() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// PowerRankingEntry is one team's line in a power ranking
type PowerRankingEntry struct {
	TeamID        int     `json:"team_id"`
	Rank          int     `json:"rank"`
	Score         float64 `json:"score"`
	Composite     float64 `json:"composite"`
	Record        string  `json:"record"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	PointsPerGame float64 `json:"points_per_game"`
}

// PowerRanking is an ordered snapshot through a given week; Entries[0] is rank 1
type PowerRanking struct {
	ThroughWeek int                 `json:"through_week"`
	Entries     []PowerRankingEntry `json:"entries"`
}

// Len returns the number of ranked teams, treating nil as empty
func (p *PowerRanking) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// TeamIDs returns team ids in rank order
func (p *PowerRanking) TeamIDs() []int {
	if p == nil {
		return nil
	}
	ids := make([]int, len(p.Entries))
	for i, e := range p.Entries {
		ids[i] = e.TeamID
	}
	return ids
}

// RankMovement is a team's change in position versus the prior snapshot.
// Known is false when the team had no prior position; Delta is then meaningless.
type RankMovement struct {
	TeamID int  `json:"team_id"`
	Delta  int  `json:"delta"`
	Known  bool `json:"known"`
}

// Symbol renders the movement for chat output
func (m RankMovement) Symbol() string {
	switch {
	case !m.Known:
		return "🆕"
	case m.Delta > 0:
		return fmt.Sprintf("▲%d", m.Delta)
	case m.Delta < 0:
		return fmt.Sprintf("▼%d", -m.Delta)
	default:
		return "—"
	}
}

// Label renders the movement for plain-text and HTML output
func (m RankMovement) Label() string {
	switch {
	case !m.Known:
		return "no prior data"
	case m.Delta > 0:
		return fmt.Sprintf("up %d", m.Delta)
	case m.Delta < 0:
		return fmt.Sprintf("down %d", -m.Delta)
	default:
		return "unchanged"
	}
}
