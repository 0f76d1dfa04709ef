package pairing

import (
	"context"
	"sort"

	"github.com/playwise/tournament-engine/models"
)

// Pair is one fixture produced by a strategy. A nil B marks a bye for A.
type Pair struct {
	A *models.Contestant
	B *models.Contestant
}

// Params carries everything a strategy may read. Strategies are pure with
// respect to persisted state: they read points, ratings and opponent history
// but never mutate contestants.
type Params struct {
	// Contestants is the currently active set. Callers guarantee at least
	// two entries; with fewer the tournament is finished instead.
	Contestants []*models.Contestant
	Round       int
}

// Strategy computes the match list for one round of a given format.
type Strategy interface {
	Pair(ctx context.Context, params Params) ([]Pair, error)

	Name() string
}

// ForFormat returns the strategy implementing the given format's pairing.
func ForFormat(format models.FormatType) Strategy {
	switch format {
	case models.FormatKnockout:
		return NewKnockoutStrategy()
	case models.FormatSwiss:
		return NewSwissStrategy()
	default:
		return NewLeagueStrategy()
	}
}

// byStanding orders contestants by points descending, rating descending.
// Knockout and Swiss both seed from this order. Ties fall through to seed and
// id so the order is total: the input arrives in map iteration order, and an
// order depending on it would change from call to call.
func byStanding(contestants []*models.Contestant) []*models.Contestant {
	sorted := make([]*models.Contestant, len(contestants))
	copy(sorted, contestants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		if sorted[i].Seed != sorted[j].Seed {
			return sorted[i].Seed < sorted[j].Seed
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// byRating orders contestants by rating descending, with the same seed and id
// tie-breaks as byStanding. League uses it as the fixed base order of the
// circle; a total order here is what makes the round-robin meet every pair
// exactly once regardless of how the caller enumerated the contestants.
func byRating(contestants []*models.Contestant) []*models.Contestant {
	sorted := make([]*models.Contestant, len(contestants))
	copy(sorted, contestants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		if sorted[i].Seed != sorted[j].Seed {
			return sorted[i].Seed < sorted[j].Seed
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
