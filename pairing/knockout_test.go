package pairing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playwise/tournament-engine/models"
)

func TestKnockoutTopVersusBottomSeeding(t *testing.T) {
	contestants := []*models.Contestant{
		newContestant("A", 1600),
		newContestant("B", 1500),
		newContestant("C", 1400),
		newContestant("D", 1300),
		newContestant("E", 1200),
	}
	strategy := NewKnockoutStrategy()

	pairs, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: 1})
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, "A", pairs[0].A.ID)
	assert.Equal(t, "E", pairs[0].B.ID)
	assert.Equal(t, "B", pairs[1].A.ID)
	assert.Equal(t, "D", pairs[1].B.ID)
	assert.Equal(t, "C", pairs[2].A.ID)
	assert.Nil(t, pairs[2].B, "the middle seed takes the bye")
}

func TestKnockoutEvenFieldHasNoBye(t *testing.T) {
	strategy := NewKnockoutStrategy()

	pairs, err := strategy.Pair(context.Background(), Params{Contestants: fieldOf(4), Round: 1})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.NotNil(t, p.B)
	}
}

func TestKnockoutReseedsOnPoints(t *testing.T) {
	contestants := fieldOf(4)
	// c4 is the rating underdog but leads on points, so it must seed first.
	contestants[3].Points = 2

	strategy := NewKnockoutStrategy()
	pairs, err := strategy.Pair(context.Background(), Params{Contestants: contestants, Round: 2})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "c4", pairs[0].A.ID)
	assert.Equal(t, "c3", pairs[0].B.ID)
}

func TestKnockoutSeedingIsStableOnTies(t *testing.T) {
	field := func(ids ...string) []*models.Contestant {
		out := make([]*models.Contestant, 0, len(ids))
		for _, id := range ids {
			out = append(out, newContestant(id, 1000))
		}
		return out
	}
	strategy := NewKnockoutStrategy()

	first, err := strategy.Pair(context.Background(), Params{Contestants: field("c1", "c2", "c3", "c4", "c5"), Round: 1})
	require.NoError(t, err)
	second, err := strategy.Pair(context.Background(), Params{Contestants: field("c5", "c3", "c1", "c4", "c2"), Round: 1})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].A.ID, second[i].A.ID)
		if first[i].B == nil {
			assert.Nil(t, second[i].B, "the bye must land on the same contestant")
			continue
		}
		require.NotNil(t, second[i].B)
		assert.Equal(t, first[i].B.ID, second[i].B.ID)
	}
}

func TestKnockoutRejectsDegenerateField(t *testing.T) {
	strategy := NewKnockoutStrategy()
	_, err := strategy.Pair(context.Background(), Params{Contestants: fieldOf(1), Round: 1})
	assert.Error(t, err)
}
