package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalRounds(t *testing.T) {
	tests := []struct {
		name   string
		format FormatType
		n      int
		want   int
	}{
		{"league even field", FormatLeague, 6, 5},
		{"league odd field", FormatLeague, 5, 5},
		{"league two contestants", FormatLeague, 2, 1},
		{"knockout power of two", FormatKnockout, 8, 3},
		{"knockout non power of two", FormatKnockout, 5, 3},
		{"knockout two contestants", FormatKnockout, 2, 1},
		{"swiss power of two", FormatSwiss, 8, 4},
		{"swiss odd field", FormatSwiss, 5, 4},
		{"degenerate field", FormatLeague, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalRounds(tt.format, tt.n))
		})
	}
}

func TestDefaultScheme(t *testing.T) {
	assert.Equal(t, LeagueScheme(), DefaultScheme(FormatLeague))
	assert.Equal(t, ClassicScheme(), DefaultScheme(FormatKnockout))
	assert.Equal(t, ClassicScheme(), DefaultScheme(FormatSwiss))
}

func TestFormatTypeValid(t *testing.T) {
	assert.True(t, FormatLeague.Valid())
	assert.True(t, FormatKnockout.Valid())
	assert.True(t, FormatSwiss.Valid())
	assert.False(t, FormatType("double_elimination").Valid())
	assert.False(t, FormatType("").Valid())
}
