package pairing

import (
	"context"
	"fmt"
)

// KnockoutStrategy pairs the active set top-vs-bottom: rank 1 plays the last
// rank, rank 2 the second-last, and so on. The seeding is recomputed from the
// surviving contestants every round rather than following a fixed bracket
// tree; this re-seeded variant is a deliberate simplification of a
// traditional single-elimination bracket. An odd active count leaves exactly
// one contestant, the middle seed, with a bye.
type KnockoutStrategy struct{}

func NewKnockoutStrategy() Strategy {
	return &KnockoutStrategy{}
}

func (s *KnockoutStrategy) Name() string {
	return "Knockout"
}

func (s *KnockoutStrategy) Pair(ctx context.Context, params Params) ([]Pair, error) {
	if len(params.Contestants) < 2 {
		return nil, fmt.Errorf("knockout pairing: need at least 2 contestants, got %d", len(params.Contestants))
	}

	seeded := byStanding(params.Contestants)
	n := len(seeded)

	pairs := make([]Pair, 0, n/2+1)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, Pair{A: seeded[i], B: seeded[n-1-i]})
	}
	if n%2 != 0 {
		pairs = append(pairs, Pair{A: seeded[n/2]})
	}
	return pairs, nil
}
