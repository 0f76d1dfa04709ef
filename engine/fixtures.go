package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playwise/tournament-engine/models"
	"github.com/playwise/tournament-engine/pairing"
)

// GenerateFixtures materializes the current round's matches from the format's
// pairing strategy and appends them to the tournament. Byes are resolved on
// the spot through the result processor, so the bye contestant's statistics
// update without a manual result.
//
// The call is idempotent against double invocation: if the current round
// already has matches it creates nothing. With fewer than two active
// contestants it fails closed by marking the tournament finished.
func GenerateFixtures(ctx context.Context, t *models.Tournament) (int, error) {
	if t.Finished {
		return 0, ErrTournamentFinished
	}
	if len(t.CurrentMatches()) > 0 {
		return 0, fmt.Errorf("%w: round %d", ErrFixturesAlreadyGenerated, t.CurrentRound)
	}

	active := t.ActiveContestants()
	if len(active) < 2 {
		t.MarkFinished(time.Now().UTC())
		return 0, fmt.Errorf("%w: %d active", ErrNotEnoughActiveContestants, len(active))
	}

	strategy := pairing.ForFormat(t.Format)
	pairs, err := strategy.Pair(ctx, pairing.Params{Contestants: active, Round: t.CurrentRound})
	if err != nil {
		return 0, fmt.Errorf("%s pairing for round %d: %w", strategy.Name(), t.CurrentRound, err)
	}

	created := 0
	for _, p := range pairs {
		m := &models.Match{
			ID:    uuid.NewString(),
			P1ID:  p.A.ID,
			Round: t.CurrentRound,
		}
		if p.B != nil {
			id := p.B.ID
			m.P2ID = &id
		}
		t.Matches = append(t.Matches, m)
		created++

		if m.IsBye() {
			if _, err := ProcessResult(t, m.ID, Outcome{Kind: OutcomeBye}); err != nil {
				return created, fmt.Errorf("auto-resolving bye for %s: %w", p.A.ID, err)
			}
		}
	}
	return created, nil
}
