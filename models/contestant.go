package models

// Contestant is one participant's identity plus its running statistics. The
// statistics are denormalized from the match list for cheap standings; the
// engine keeps both in sync on every result and undo.
type Contestant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Seed   int    `json:"seed"`
	// Active is false once eliminated in knockout; the other formats never
	// clear it.
	Active bool `json:"active"`

	MatchesPlayed int     `json:"matches_played"`
	Won           int     `json:"won"`
	Drawn         int     `json:"drawn"`
	Lost          int     `json:"lost"`
	Points        float64 `json:"points"`
	ScoreFor      int     `json:"score_for"`
	ScoreAgainst  int     `json:"score_against"`

	// OpponentHistory lists distinct opponents already faced, in first-meeting
	// order. Swiss pairing reads it to avoid rematches.
	OpponentHistory []string `json:"opponent_history,omitempty"`
}

func (c *Contestant) ScoreDiff() int {
	return c.ScoreFor - c.ScoreAgainst
}

// HasPlayed reports whether the contestant has already faced the opponent.
func (c *Contestant) HasPlayed(opponentID string) bool {
	for _, id := range c.OpponentHistory {
		if id == opponentID {
			return true
		}
	}
	return false
}

// AddOpponent records a first meeting; repeat meetings are not duplicated.
func (c *Contestant) AddOpponent(opponentID string) {
	if !c.HasPlayed(opponentID) {
		c.OpponentHistory = append(c.OpponentHistory, opponentID)
	}
}

// RemoveOpponent drops the opponent from the history. Callers only do this
// when undoing the sole played meeting between the two.
func (c *Contestant) RemoveOpponent(opponentID string) {
	for i, id := range c.OpponentHistory {
		if id == opponentID {
			c.OpponentHistory = append(c.OpponentHistory[:i], c.OpponentHistory[i+1:]...)
			return
		}
	}
}
