package engine

import (
	"fmt"

	"github.com/playwise/tournament-engine/models"
)

// OutcomeKind tags the reported result of a match.
type OutcomeKind string

const (
	OutcomeWin  OutcomeKind = "win"
	OutcomeDraw OutcomeKind = "draw"
	// OutcomeBye is synthesized by the fixture generator for bye matches;
	// callers never report it.
	OutcomeBye OutcomeKind = "bye"
)

// Outcome is the reported result of a match: Win(contestant id), Draw, or the
// synthetic Bye. A scoreline is optional; when absent, 1-0 / 0-1 / 1-1 is
// recorded, matching the quick-entry convention.
type Outcome struct {
	Kind      OutcomeKind
	WinnerID  string
	HasScores bool
	P1Score   int
	P2Score   int
}

func Win(winnerID string) Outcome {
	return Outcome{Kind: OutcomeWin, WinnerID: winnerID}
}

func Draw() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

// WithScores attaches an explicit scoreline to the outcome.
func (o Outcome) WithScores(p1, p2 int) Outcome {
	o.HasScores = true
	o.P1Score = p1
	o.P2Score = p2
	return o
}

// scoreline resolves the recorded scores for a match, validating any explicit
// scoreline against the reported kind.
func (o Outcome) scoreline(m *models.Match) (p1 int, p2 int, err error) {
	if !o.HasScores {
		switch o.Kind {
		case OutcomeDraw:
			return 1, 1, nil
		case OutcomeBye:
			return 1, 0, nil
		default:
			if o.WinnerID == m.P1ID {
				return 1, 0, nil
			}
			return 0, 1, nil
		}
	}

	if o.P1Score < 0 || o.P2Score < 0 {
		return 0, 0, fmt.Errorf("%w: negative score", ErrInvalidOutcome)
	}
	switch o.Kind {
	case OutcomeDraw:
		if o.P1Score != o.P2Score {
			return 0, 0, fmt.Errorf("%w: draw reported with unequal scores %d-%d", ErrInvalidOutcome, o.P1Score, o.P2Score)
		}
	case OutcomeWin, OutcomeBye:
		winnerIsP1 := o.Kind == OutcomeBye || o.WinnerID == m.P1ID
		if winnerIsP1 && o.P1Score <= o.P2Score || !winnerIsP1 && o.P2Score <= o.P1Score {
			return 0, 0, fmt.Errorf("%w: scoreline %d-%d contradicts reported winner", ErrInvalidOutcome, o.P1Score, o.P2Score)
		}
	}
	return o.P1Score, o.P2Score, nil
}
