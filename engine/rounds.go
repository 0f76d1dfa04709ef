package engine

import (
	"time"

	"github.com/playwise/tournament-engine/models"
)

// State is the round controller's view of a tournament.
type State string

const (
	// StateAwaitingFixtures: the current round has no matches yet.
	StateAwaitingFixtures State = "awaiting_fixtures"
	// StateRoundInProgress: the current round has unplayed matches.
	StateRoundInProgress State = "round_in_progress"
	// StateRoundComplete: every current-round match is played; the round can
	// be advanced.
	StateRoundComplete State = "round_complete"
	// StateFinished is absorbing: no fixture generation or result processing
	// is permitted anymore.
	StateFinished State = "finished"
)

// StateOf derives the controller state from the aggregate.
func StateOf(t *models.Tournament) State {
	if t.Finished {
		return StateFinished
	}
	current := t.CurrentMatches()
	if len(current) == 0 {
		return StateAwaitingFixtures
	}
	for _, m := range current {
		if !m.Played {
			return StateRoundInProgress
		}
	}
	return StateRoundComplete
}

// RoundComplete reports whether the current round exists and is fully played.
func RoundComplete(t *models.Tournament) bool {
	return StateOf(t) == StateRoundComplete
}

// AdvanceRound moves a completed round forward: it either increments the
// round counter or, when the termination rule fires, marks the tournament
// finished. Knockout terminates once a single active contestant remains;
// League and Swiss terminate after the round count computed at creation.
func AdvanceRound(t *models.Tournament) (State, error) {
	if t.Finished {
		return StateFinished, ErrTournamentFinished
	}
	if !RoundComplete(t) {
		return StateOf(t), ErrRoundIncomplete
	}

	if t.Format == models.FormatKnockout {
		if len(t.ActiveContestants()) <= 1 {
			t.MarkFinished(time.Now().UTC())
			return StateFinished, nil
		}
	} else if t.CurrentRound >= t.TotalRounds {
		t.MarkFinished(time.Now().UTC())
		return StateFinished, nil
	}

	t.CurrentRound++
	return StateAwaitingFixtures, nil
}
