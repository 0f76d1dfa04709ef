package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/playwise/tournament-engine/models"
)

// testTournament builds an aggregate with contestants c1..cN holding the given
// ratings, highest first for a deterministic pairing order.
func testTournament(format models.FormatType, ratings ...int) *models.Tournament {
	t := &models.Tournament{
		ID:           "t1",
		Name:         "Test Open",
		Game:         "chess",
		Format:       format,
		Scheme:       models.DefaultScheme(format),
		AllowsDraw:   format != models.FormatKnockout,
		CurrentRound: 1,
		TotalRounds:  models.TotalRounds(format, len(ratings)),
		CreatedAt:    time.Now().UTC(),
		Contestants:  make(map[string]*models.Contestant, len(ratings)),
	}
	for i, rating := range ratings {
		id := fmt.Sprintf("c%d", i+1)
		t.Contestants[id] = &models.Contestant{ID: id, Name: id, Rating: rating, Active: true}
	}
	return t
}

// playRound resolves every open match of the current round with P1 winning.
func playRound(t *testing.T, agg *models.Tournament) {
	t.Helper()
	for _, m := range agg.CurrentMatches() {
		if m.Played {
			continue
		}
		_, err := ProcessResult(agg, m.ID, Win(m.P1ID))
		require.NoError(t, err)
	}
}

func generate(t *testing.T, agg *models.Tournament) int {
	t.Helper()
	created, err := GenerateFixtures(context.Background(), agg)
	require.NoError(t, err)
	return created
}

// matchBetween finds the current-round match involving the two contestants.
func matchBetween(t *testing.T, agg *models.Tournament, aID, bID string) *models.Match {
	t.Helper()
	for _, m := range agg.CurrentMatches() {
		if m.Involves(aID) && m.Involves(bID) {
			return m
		}
	}
	t.Fatalf("no current match between %s and %s", aID, bID)
	return nil
}

func byeMatch(t *testing.T, agg *models.Tournament) *models.Match {
	t.Helper()
	for _, m := range agg.CurrentMatches() {
		if m.IsBye() {
			return m
		}
	}
	t.Fatal("no bye match in the current round")
	return nil
}
