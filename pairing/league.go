package pairing

import (
	"context"
	"fmt"

	"github.com/playwise/tournament-engine/models"
)

// LeagueStrategy implements a single round-robin via the circle method.
// Contestants are ordered by rating once; slot 0 stays fixed while the rest
// rotate by (round−1) positions each round, and slot i plays slot n−1−i.
// Run for n−1 rounds (even n) or n rounds (odd n, with a ghost slot granting
// one bye per round) this meets every pair exactly once.
type LeagueStrategy struct{}

func NewLeagueStrategy() Strategy {
	return &LeagueStrategy{}
}

func (s *LeagueStrategy) Name() string {
	return "League"
}

func (s *LeagueStrategy) Pair(ctx context.Context, params Params) ([]Pair, error) {
	if len(params.Contestants) < 2 {
		return nil, fmt.Errorf("league pairing: need at least 2 contestants, got %d", len(params.Contestants))
	}

	circle := byRating(params.Contestants)
	if len(circle)%2 != 0 {
		// Ghost slot: whoever draws the nil opponent receives a bye.
		circle = append(circle, nil)
	}
	n := len(circle)

	rest := circle[1:]
	steps := (params.Round - 1) % (n - 1)
	order := make([]*models.Contestant, 0, n)
	order = append(order, circle[0])
	order = append(order, rest[steps:]...)
	order = append(order, rest[:steps]...)

	pairs := make([]Pair, 0, n/2)
	for i := 0; i < n/2; i++ {
		a, b := order[i], order[n-1-i]
		if a == nil {
			a, b = b, nil
		}
		pairs = append(pairs, Pair{A: a, B: b})
	}
	return pairs, nil
}
