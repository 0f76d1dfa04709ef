package models

import "math"

// FormatType selects the pairing algorithm and the termination rule.
type FormatType string

const (
	FormatLeague   FormatType = "league"
	FormatKnockout FormatType = "knockout"
	FormatSwiss    FormatType = "swiss"
)

func (f FormatType) Valid() bool {
	switch f {
	case FormatLeague, FormatKnockout, FormatSwiss:
		return true
	}
	return false
}

// PointScheme holds the points awarded per result. Byes score as wins by
// default; some leagues run 3/1 instead of the chess-style 1/0.5, so the
// values are per-tournament configuration rather than constants.
type PointScheme struct {
	Win  float64 `json:"win"`
	Draw float64 `json:"draw"`
	Bye  float64 `json:"bye"`
}

// ClassicScheme is the chess-style 1 / 0.5 scheme used by Swiss and Knockout.
func ClassicScheme() PointScheme {
	return PointScheme{Win: 1.0, Draw: 0.5, Bye: 1.0}
}

// LeagueScheme is the football-style 3 / 1 scheme.
func LeagueScheme() PointScheme {
	return PointScheme{Win: 3, Draw: 1, Bye: 3}
}

// DefaultScheme returns the conventional scheme for a format.
func DefaultScheme(format FormatType) PointScheme {
	if format == FormatLeague {
		return LeagueScheme()
	}
	return ClassicScheme()
}

// TotalRounds computes, at creation time, how many rounds a tournament of the
// given format needs with n contestants: a full single round-robin for League
// (n−1 when n is even, n when odd so everyone sits out exactly once),
// ceil(log2 n) for Knockout, and the Swiss convention of ceil(log2 n)+1.
func TotalRounds(format FormatType, n int) int {
	if n < 2 {
		return 0
	}
	switch format {
	case FormatLeague:
		if n%2 == 0 {
			return n - 1
		}
		return n
	case FormatKnockout:
		return int(math.Ceil(math.Log2(float64(n))))
	case FormatSwiss:
		return int(math.Ceil(math.Log2(float64(n)))) + 1
	}
	return 1
}
