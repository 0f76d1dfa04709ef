package engine

import (
	"fmt"
	"time"

	"github.com/playwise/tournament-engine/models"
)

// Report is the structured record emitted for every processed match: enough
// for a caller to render standings, history or exports without touching the
// aggregate again.
type Report struct {
	TournamentID string  `json:"tournament_id"`
	MatchID      string  `json:"match_id"`
	Round        int     `json:"round"`
	P1ID         string  `json:"p1_id"`
	P1Name       string  `json:"p1_name"`
	P2ID         *string `json:"p2_id,omitempty"`
	P2Name       string  `json:"p2_name,omitempty"`
	P1Score      int     `json:"p1_score"`
	P2Score      int     `json:"p2_score"`
	Draw         bool    `json:"draw"`
	Bye          bool    `json:"bye"`
	WinnerID     *string `json:"winner_id,omitempty"`
	EliminatedID *string `json:"eliminated_id,omitempty"`
}

// Line renders the human-readable history entry for the report. It is
// derivable from the match and contestant deltas alone, so replaying a
// tournament reproduces the history verbatim.
func (r *Report) Line() string {
	switch {
	case r.Bye:
		return fmt.Sprintf("R%d: %s receives a bye", r.Round, r.P1Name)
	case r.Draw:
		return fmt.Sprintf("R%d: %s %d-%d %s, draw", r.Round, r.P1Name, r.P1Score, r.P2Score, r.P2Name)
	default:
		winner := r.P1Name
		if r.WinnerID != nil && r.P2ID != nil && *r.WinnerID == *r.P2ID {
			winner = r.P2Name
		}
		line := fmt.Sprintf("R%d: %s %d-%d %s, %s wins", r.Round, r.P1Name, r.P1Score, r.P2Score, r.P2Name, winner)
		if r.EliminatedID != nil {
			line += " (opponent eliminated)"
		}
		return line
	}
}

// ProcessResult validates a reported outcome against the tournament's format
// rules and applies it to the match and both contestants' running statistics.
// All mutations land in memory atomically: the aggregate is never left half
// updated, regardless of what the caller does about persistence afterwards.
func ProcessResult(t *models.Tournament, matchID string, outcome Outcome) (*Report, error) {
	if t.Finished {
		return nil, ErrTournamentFinished
	}

	m := t.MatchByID(matchID)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
	}
	if m.Played {
		return nil, ErrAlreadyPlayed
	}

	switch outcome.Kind {
	case OutcomeDraw:
		if t.Format == models.FormatKnockout {
			return nil, fmt.Errorf("%w in knockout", ErrIllegalDraw)
		}
		if !t.AllowsDraw {
			return nil, fmt.Errorf("%w for %s", ErrIllegalDraw, t.Game)
		}
		if m.IsBye() {
			return nil, fmt.Errorf("%w: bye match cannot draw", ErrInvalidOutcome)
		}
	case OutcomeWin:
		if !m.Involves(outcome.WinnerID) {
			return nil, fmt.Errorf("%w: contestant %s is not in match %s", ErrInvalidOutcome, outcome.WinnerID, matchID)
		}
	case OutcomeBye:
		if !m.IsBye() {
			return nil, fmt.Errorf("%w: bye outcome on a regular match", ErrInvalidOutcome)
		}
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidOutcome, outcome.Kind)
	}

	p1Score, p2Score, err := outcome.scoreline(m)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t.PlayCounter++
	m.Played = true
	m.P1Score = p1Score
	m.P2Score = p2Score
	m.PlayedAt = &now
	m.PlaySeq = t.PlayCounter

	p1 := t.Contestant(m.P1ID)
	report := &Report{
		TournamentID: t.ID,
		MatchID:      m.ID,
		Round:        m.Round,
		P1ID:         p1.ID,
		P1Name:       p1.Name,
		P1Score:      p1Score,
		P2Score:      p2Score,
	}

	if m.IsBye() {
		// Sole contestant, treated as a win; no opponent history.
		p1.MatchesPlayed++
		p1.Won++
		p1.Points += t.Scheme.Bye
		m.WinnerID = &p1.ID
		report.Bye = true
		report.WinnerID = &p1.ID
		t.History = append(t.History, report.Line())
		return report, nil
	}

	p2 := t.Contestant(*m.P2ID)
	report.P2ID = &p2.ID
	report.P2Name = p2.Name

	p1.MatchesPlayed++
	p2.MatchesPlayed++
	p1.ScoreFor += p1Score
	p1.ScoreAgainst += p2Score
	p2.ScoreFor += p2Score
	p2.ScoreAgainst += p1Score
	p1.AddOpponent(p2.ID)
	p2.AddOpponent(p1.ID)

	if outcome.Kind == OutcomeDraw {
		m.Draw = true
		p1.Drawn++
		p2.Drawn++
		p1.Points += t.Scheme.Draw
		p2.Points += t.Scheme.Draw
		report.Draw = true
		t.History = append(t.History, report.Line())
		return report, nil
	}

	winner, loser := p1, p2
	if outcome.WinnerID == p2.ID {
		winner, loser = p2, p1
	}
	winner.Won++
	loser.Lost++
	winner.Points += t.Scheme.Win
	m.WinnerID = &winner.ID
	report.WinnerID = &winner.ID

	// A draw can never reach this branch in knockout; it was rejected above.
	if t.Format == models.FormatKnockout {
		loser.Active = false
		report.EliminatedID = &loser.ID
	}

	t.History = append(t.History, report.Line())
	return report, nil
}
