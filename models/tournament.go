package models

import (
	"sort"
	"time"
)

// Tournament is the aggregate root: it exclusively owns its contestants and
// matches. The match list only ever grows; a round's matches are exactly those
// with Round == CurrentRound until the round is advanced.
type Tournament struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Game         string      `json:"game"`
	Format       FormatType  `json:"format"`
	Scheme       PointScheme `json:"scheme"`
	AllowsDraw   bool        `json:"allows_draw"`
	CurrentRound int         `json:"current_round"`
	TotalRounds  int         `json:"total_rounds"`
	Finished     bool        `json:"finished"`
	WinnerID     *string     `json:"winner_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	FinishedAt   *time.Time  `json:"finished_at,omitempty"`

	Contestants map[string]*Contestant `json:"contestants"`
	Matches     []*Match               `json:"matches"`

	// History holds one human-readable line per processed result, in play
	// order. Kept for audits; it carries no state the matches don't.
	History []string `json:"history,omitempty"`

	// PlayCounter backs Match.PlaySeq.
	PlayCounter int `json:"play_counter"`
}

// Contestant returns the contestant with the given id, or nil.
func (t *Tournament) Contestant(id string) *Contestant {
	return t.Contestants[id]
}

// MatchByID returns the match with the given id, or nil if it does not
// belong to this tournament.
func (t *Tournament) MatchByID(id string) *Match {
	for _, m := range t.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ActiveContestants returns the not-yet-eliminated contestants in an
// unspecified order; pairing strategies apply their own sort.
func (t *Tournament) ActiveContestants() []*Contestant {
	active := make([]*Contestant, 0, len(t.Contestants))
	for _, c := range t.Contestants {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

// CurrentMatches returns the matches of the round in progress.
func (t *Tournament) CurrentMatches() []*Match {
	return t.MatchesByRound(t.CurrentRound)
}

func (t *Tournament) MatchesByRound(round int) []*Match {
	var out []*Match
	for _, m := range t.Matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// LastPlayedMatch returns the most recently resolved match, or nil when no
// match has been played yet.
func (t *Tournament) LastPlayedMatch() *Match {
	var last *Match
	for _, m := range t.Matches {
		if m.Played && (last == nil || m.PlaySeq > last.PlaySeq) {
			last = m
		}
	}
	return last
}

// Standings returns every contestant, eliminated ones included, ordered by
// points, then score difference, then rating, all descending.
func (t *Tournament) Standings() []*Contestant {
	out := make([]*Contestant, 0, len(t.Contestants))
	for _, c := range t.Contestants {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].ScoreDiff() != out[j].ScoreDiff() {
			return out[i].ScoreDiff() > out[j].ScoreDiff()
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}

// Winner returns the head of the standings once the tournament is finished.
func (t *Tournament) Winner() *Contestant {
	if !t.Finished {
		return nil
	}
	standings := t.Standings()
	if len(standings) == 0 {
		return nil
	}
	return standings[0]
}

// Progress reports the played share of all generated matches, in percent.
func (t *Tournament) Progress() float64 {
	if len(t.Matches) == 0 {
		return 0
	}
	played := 0
	for _, m := range t.Matches {
		if m.Played {
			played++
		}
	}
	return float64(played) / float64(len(t.Matches)) * 100
}

// MarkFinished flips the terminal flag and records the winner. Finished is
// absorbing: callers must reject any further mutation.
func (t *Tournament) MarkFinished(now time.Time) {
	if t.Finished {
		return
	}
	t.Finished = true
	t.FinishedAt = &now
	if w := t.Winner(); w != nil {
		t.WinnerID = &w.ID
	}
}

// PlayedMeetings counts the played non-bye matches between two contestants.
func (t *Tournament) PlayedMeetings(aID, bID string) int {
	n := 0
	for _, m := range t.Matches {
		if m.Played && !m.IsBye() && m.Involves(aID) && m.Involves(bID) {
			n++
		}
	}
	return n
}
