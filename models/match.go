package models

import "time"

// Match pairs two contestants inside one round. A nil P2ID marks a bye:
// bye matches are always played at creation time with P1 as automatic winner.
// Once played a match is immutable, except through the explicit undo operation.
type Match struct {
	ID       string  `json:"id"`
	P1ID     string  `json:"p1_id"`
	P2ID     *string `json:"p2_id,omitempty"`
	Round    int     `json:"round"`
	Played   bool    `json:"played"`
	P1Score  int     `json:"p1_score"`
	P2Score  int     `json:"p2_score"`
	Draw     bool    `json:"draw"`
	WinnerID *string `json:"winner_id,omitempty"`

	PlayedAt *time.Time `json:"played_at,omitempty"`
	// PlaySeq is a tournament-wide counter assigned when the match is resolved.
	// The undo operation uses it to find the most recently played match.
	PlaySeq int `json:"play_seq,omitempty"`
}

func (m *Match) IsBye() bool {
	return m.P2ID == nil
}

// Involves reports whether the given contestant takes part in the match.
func (m *Match) Involves(contestantID string) bool {
	if m.P1ID == contestantID {
		return true
	}
	return m.P2ID != nil && *m.P2ID == contestantID
}

// LoserID returns the id of the losing contestant, or nil for draws, byes
// and unplayed matches.
func (m *Match) LoserID() *string {
	if !m.Played || m.Draw || m.IsBye() || m.WinnerID == nil {
		return nil
	}
	if *m.WinnerID == m.P1ID {
		return m.P2ID
	}
	p1 := m.P1ID
	return &p1
}
