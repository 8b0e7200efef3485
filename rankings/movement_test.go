package rankings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper-league-bot/models"
)

func rankingOf(ids ...int) *models.PowerRanking {
	r := &models.PowerRanking{}
	for i, id := range ids {
		r.Entries = append(r.Entries, models.PowerRankingEntry{TeamID: id, Rank: i + 1})
	}
	return r
}

func TestMovementsSwap(t *testing.T) {
	const a, b, c = 1, 2, 3
	moves := MovementsByTeam(rankingOf(b, a, c), rankingOf(a, b, c))

	assert.Equal(t, models.RankMovement{TeamID: a, Delta: -1, Known: true}, moves[a])
	assert.Equal(t, models.RankMovement{TeamID: b, Delta: 1, Known: true}, moves[b])
	assert.Equal(t, models.RankMovement{TeamID: c, Delta: 0, Known: true}, moves[c])
}

func TestMovementsAlignWithCurrentOrder(t *testing.T) {
	moves := Movements(rankingOf(4, 8, 6), rankingOf(6, 8, 4))

	require.Len(t, moves, 3)
	assert.Equal(t, []int{4, 8, 6}, []int{moves[0].TeamID, moves[1].TeamID, moves[2].TeamID})
	assert.Equal(t, 2, moves[0].Delta)
	assert.Equal(t, -2, moves[2].Delta)
}

func TestMovementsNewEntrant(t *testing.T) {
	moves := MovementsByTeam(rankingOf(9, 1), rankingOf(1))

	assert.False(t, moves[9].Known)
	assert.Equal(t, "no prior data", moves[9].Label())
	assert.Equal(t, models.RankMovement{TeamID: 1, Delta: -1, Known: true}, moves[1])
}

func TestMovementsWithoutPrior(t *testing.T) {
	for _, m := range Movements(rankingOf(1, 2), nil) {
		assert.False(t, m.Known)
		assert.Equal(t, "🆕", m.Symbol())
	}
	assert.Nil(t, Movements(nil, rankingOf(1)))
}
