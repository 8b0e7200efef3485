package handlers

import (
	"sleeper-league-bot/models"
	"sleeper-league-bot/rankings"
	"sleeper-league-bot/services"
)

// RankingRow is one team's line as served to API and HTML clients
type RankingRow struct {
	Rank          int                 `json:"rank"`
	TeamID        int                 `json:"team_id"`
	Team          string              `json:"team"`
	Score         float64             `json:"score"`
	Record        string              `json:"record"`
	PointsPerGame float64             `json:"points_per_game"`
	Movement      models.RankMovement `json:"movement"`
	MovementLabel string              `json:"movement_label"`
}

// RankingView is a ranking snapshot with names and movements resolved
type RankingView struct {
	ThroughWeek int          `json:"through_week"`
	Rows        []RankingRow `json:"rows"`
}

// buildRankingView joins entries, names and movements in rank order
func buildRankingView(snapshot *rankings.Snapshot, names map[int]string) RankingView {
	view := RankingView{Rows: []RankingRow{}}
	if snapshot == nil || snapshot.Current == nil {
		return view
	}
	view.ThroughWeek = snapshot.Current.ThroughWeek

	moves := make(map[int]models.RankMovement, len(snapshot.Movements))
	for _, m := range snapshot.Movements {
		moves[m.TeamID] = m
	}
	for _, e := range snapshot.Current.Entries {
		move, ok := moves[e.TeamID]
		if !ok {
			move = models.RankMovement{TeamID: e.TeamID}
		}
		view.Rows = append(view.Rows, RankingRow{
			Rank:          e.Rank,
			TeamID:        e.TeamID,
			Team:          services.TeamName(names, e.TeamID),
			Score:         e.Score,
			Record:        e.Record,
			PointsPerGame: e.PointsPerGame,
			Movement:      move,
			MovementLabel: move.Label(),
		})
	}
	return view
}
