package rankings

import (
	"sleeper-league-bot/models"
)

// Movements compares current against prior and returns one movement per
// current entry, in current rank order. Delta is prior index minus current
// index, so positive means the team climbed. Teams missing from prior, or
// every team when prior is nil, are reported with Known false.
func Movements(current, prior *models.PowerRanking) []models.RankMovement {
	if current == nil {
		return nil
	}

	priorIndex := make(map[int]int, prior.Len())
	if prior != nil {
		for i, entry := range prior.Entries {
			priorIndex[entry.TeamID] = i
		}
	}

	movements := make([]models.RankMovement, len(current.Entries))
	for i, entry := range current.Entries {
		movement := models.RankMovement{TeamID: entry.TeamID}
		if p, ok := priorIndex[entry.TeamID]; ok {
			movement.Delta = p - i
			movement.Known = true
		}
		movements[i] = movement
	}
	return movements
}

// MovementsByTeam is Movements keyed by team id
func MovementsByTeam(current, prior *models.PowerRanking) map[int]models.RankMovement {
	movements := Movements(current, prior)
	byTeam := make(map[int]models.RankMovement, len(movements))
	for _, m := range movements {
		byTeam[m.TeamID] = m
	}
	return byTeam
}
