package engine

import (
	"fmt"

	"github.com/playwise/tournament-engine/models"
)

// UndoLastResult reverses the single most recently played match: statistics,
// points, scoreline, opponent history and, in knockout, the loser's
// elimination. Only one step of undo is supported; the next call reverses the
// match that became most recent.
//
// Undo is refused once the tournament is finished or once the round counter
// has moved past the match's round, so the round bookkeeping stays coherent.
func UndoLastResult(t *models.Tournament) (*models.Match, error) {
	if t.Finished {
		return nil, ErrTournamentFinished
	}
	m := t.LastPlayedMatch()
	if m == nil {
		return nil, ErrNothingToUndo
	}
	if m.Round != t.CurrentRound {
		return nil, fmt.Errorf("%w: last result belongs to round %d, already advanced to %d",
			ErrNothingToUndo, m.Round, t.CurrentRound)
	}

	p1 := t.Contestant(m.P1ID)

	if m.IsBye() {
		p1.MatchesPlayed--
		p1.Won--
		p1.Points -= t.Scheme.Bye
	} else {
		p2 := t.Contestant(*m.P2ID)

		p1.MatchesPlayed--
		p2.MatchesPlayed--
		p1.ScoreFor -= m.P1Score
		p1.ScoreAgainst -= m.P2Score
		p2.ScoreFor -= m.P2Score
		p2.ScoreAgainst -= m.P1Score

		switch {
		case m.Draw:
			p1.Drawn--
			p2.Drawn--
			p1.Points -= t.Scheme.Draw
			p2.Points -= t.Scheme.Draw
		case m.WinnerID != nil:
			winner, loser := p1, p2
			if *m.WinnerID == p2.ID {
				winner, loser = p2, p1
			}
			winner.Won--
			loser.Lost--
			winner.Points -= t.Scheme.Win
			if t.Format == models.FormatKnockout {
				loser.Active = true
			}
		}

		// The history entry is shared by every meeting of the two, so it is
		// only removed when this was their sole played match.
		if t.PlayedMeetings(p1.ID, p2.ID) == 1 {
			p1.RemoveOpponent(p2.ID)
			p2.RemoveOpponent(p1.ID)
		}
	}

	m.Played = false
	m.P1Score = 0
	m.P2Score = 0
	m.Draw = false
	m.WinnerID = nil
	m.PlayedAt = nil
	m.PlaySeq = 0

	if n := len(t.History); n > 0 {
		t.History = t.History[:n-1]
	}
	return m, nil
}
