package pairing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playwise/tournament-engine/models"
)

func newContestant(id string, rating int) *models.Contestant {
	return &models.Contestant{ID: id, Name: id, Rating: rating, Active: true}
}

func fieldOf(n int) []*models.Contestant {
	out := make([]*models.Contestant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, newContestant(fmt.Sprintf("c%d", i+1), 1600-i*50))
	}
	return out
}

func pairKey(a, b *models.Contestant) string {
	if a.ID < b.ID {
		return a.ID + "/" + b.ID
	}
	return b.ID + "/" + a.ID
}

func TestLeagueEvenFieldIsFullRoundRobin(t *testing.T) {
	contestants := fieldOf(6)
	strategy := NewLeagueStrategy()

	meetings := make(map[string]int)
	for round := 1; round <= 5; round++ {
		pairs, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: round})
		require.NoError(t, err)
		require.Len(t, pairs, 3)

		appeared := make(map[string]bool)
		for _, p := range pairs {
			require.NotNil(t, p.A)
			require.NotNil(t, p.B, "even field must not produce byes")
			require.False(t, appeared[p.A.ID], "contestant %s paired twice in round %d", p.A.ID, round)
			require.False(t, appeared[p.B.ID], "contestant %s paired twice in round %d", p.B.ID, round)
			appeared[p.A.ID] = true
			appeared[p.B.ID] = true
			meetings[pairKey(p.A, p.B)]++
		}
	}

	require.Len(t, meetings, 15, "6 contestants meet in C(6,2) distinct pairs")
	for key, n := range meetings {
		assert.Equal(t, 1, n, "pair %s met %d times", key, n)
	}
}

func TestLeagueOddFieldGrantsEachContestantOneBye(t *testing.T) {
	contestants := fieldOf(5)
	strategy := NewLeagueStrategy()

	meetings := make(map[string]int)
	byes := make(map[string]int)
	for round := 1; round <= 5; round++ {
		pairs, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: round})
		require.NoError(t, err)
		require.Len(t, pairs, 3)

		byeCount := 0
		for _, p := range pairs {
			require.NotNil(t, p.A, "bye slot must be normalized onto A")
			if p.B == nil {
				byes[p.A.ID]++
				byeCount++
				continue
			}
			meetings[pairKey(p.A, p.B)]++
		}
		assert.Equal(t, 1, byeCount, "odd field yields exactly one bye per round")
	}

	require.Len(t, meetings, 10)
	for key, n := range meetings {
		assert.Equal(t, 1, n, "pair %s met %d times", key, n)
	}
	require.Len(t, byes, 5, "every contestant sits out exactly once")
	for id, n := range byes {
		assert.Equal(t, 1, n, "contestant %s received %d byes", id, n)
	}
}

func TestLeagueScheduleIsReproducible(t *testing.T) {
	contestants := fieldOf(4)
	strategy := NewLeagueStrategy()

	first, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: 2})
	require.NoError(t, err)
	second, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: 2})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].A.ID, second[i].A.ID)
		assert.Equal(t, first[i].B.ID, second[i].B.ID)
	}
}

func TestLeagueTiedRatingsRemainFullRoundRobin(t *testing.T) {
	contestants := make([]*models.Contestant, 4)
	for i := range contestants {
		contestants[i] = newContestant(fmt.Sprintf("c%d", i+1), 1000)
	}
	strategy := NewLeagueStrategy()

	meetings := make(map[string]int)
	for round := 1; round <= 3; round++ {
		// Present the field in a different order each round, as a map
		// iteration would; the circle's base order must not follow it.
		rotated := append(append([]*models.Contestant(nil), contestants[round%4:]...), contestants[:round%4]...)

		pairs, err := strategy.Pair(context.Background(), Params{Contestants: rotated, Round: round})
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		for _, p := range pairs {
			require.NotNil(t, p.B)
			meetings[pairKey(p.A, p.B)]++
		}
	}

	require.Len(t, meetings, 6, "4 tied contestants still meet in C(4,2) distinct pairs")
	for key, n := range meetings {
		assert.Equal(t, 1, n, "pair %s met %d times", key, n)
	}
}

func TestLeagueRejectsDegenerateField(t *testing.T) {
	strategy := NewLeagueStrategy()
	_, err := strategy.Pair(context.Background(), Params{Contestants: fieldOf(1), Round: 1})
	assert.Error(t, err)
}
