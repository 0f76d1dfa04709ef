package pairing

import (
	"context"
	"fmt"
)

// SwissStrategy pairs contestants on similar scores while avoiding rematches.
// It repeatedly pops the highest-ranked unpaired contestant and scans the
// remaining pool in rank order for the first opponent missing from its
// opponent history. When every remaining opponent is a rematch the next
// available contestant is paired anyway; that fallback keeps the round
// generable under heavy skew at the cost of permitting a repeat, and a greedy
// pass always terminates, unlike a backtracking search for a perfect
// non-repeat pairing. Any contestant left over receives a bye.
type SwissStrategy struct{}

func NewSwissStrategy() Strategy {
	return &SwissStrategy{}
}

func (s *SwissStrategy) Name() string {
	return "Swiss"
}

func (s *SwissStrategy) Pair(ctx context.Context, params Params) ([]Pair, error) {
	if len(params.Contestants) < 2 {
		return nil, fmt.Errorf("swiss pairing: need at least 2 contestants, got %d", len(params.Contestants))
	}

	pool := byStanding(params.Contestants)

	pairs := make([]Pair, 0, len(pool)/2+1)
	for len(pool) > 1 {
		a := pool[0]
		pool = pool[1:]

		// First fresh opponent in rank order; index 0 doubles as the forced
		// rematch fallback when the whole pool has been faced already.
		idx := 0
		for i, candidate := range pool {
			if !a.HasPlayed(candidate.ID) {
				idx = i
				break
			}
		}

		b := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		pairs = append(pairs, Pair{A: a, B: b})
	}

	if len(pool) == 1 {
		pairs = append(pairs, Pair{A: pool[0]})
	}
	return pairs, nil
}
