package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playwise/tournament-engine/models"
)

func TestProcessResultWinUpdatesBothSides(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	report, err := ProcessResult(agg, m.ID, Win("c1"))
	require.NoError(t, err)

	winner := agg.Contestant("c1")
	loser := agg.Contestant("c2")
	assert.Equal(t, 1, winner.Won)
	assert.Equal(t, 1, loser.Lost)
	assert.Equal(t, agg.Scheme.Win, winner.Points)
	assert.Zero(t, loser.Points)
	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, loser.MatchesPlayed)
	assert.True(t, winner.HasPlayed("c2"))
	assert.True(t, loser.HasPlayed("c1"))

	assert.True(t, m.Played)
	assert.Equal(t, 1, m.P1Score)
	assert.Equal(t, 0, m.P2Score)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, "c1", *m.WinnerID)

	require.NotNil(t, report.WinnerID)
	assert.Equal(t, "c1", *report.WinnerID)
	assert.Nil(t, report.EliminatedID)
	require.Len(t, agg.History, 1)
	assert.Equal(t, report.Line(), agg.History[0])
}

func TestProcessResultExplicitScoreline(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	_, err := ProcessResult(agg, m.ID, Win("c2").WithScores(1, 3))
	require.NoError(t, err)

	assert.Equal(t, 1, m.P1Score)
	assert.Equal(t, 3, m.P2Score)
	assert.Equal(t, 3, agg.Contestant("c2").ScoreFor)
	assert.Equal(t, 1, agg.Contestant("c2").ScoreAgainst)
	assert.Equal(t, 2, agg.Contestant("c2").ScoreDiff())
	assert.Equal(t, -2, agg.Contestant("c1").ScoreDiff())
}

func TestProcessResultDrawSplitsPoints(t *testing.T) {
	agg := testTournament(models.FormatSwiss, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	report, err := ProcessResult(agg, m.ID, Draw())
	require.NoError(t, err)

	assert.True(t, report.Draw)
	assert.True(t, m.Draw)
	assert.Equal(t, 1, m.P1Score)
	assert.Equal(t, 1, m.P2Score)
	assert.Equal(t, agg.Scheme.Draw, agg.Contestant("c1").Points)
	assert.Equal(t, agg.Scheme.Draw, agg.Contestant("c2").Points)
	assert.Equal(t, 1, agg.Contestant("c1").Drawn)
	assert.Equal(t, 1, agg.Contestant("c2").Drawn)
}

func TestProcessResultKnockoutEliminatesLoser(t *testing.T) {
	agg := testTournament(models.FormatKnockout, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	report, err := ProcessResult(agg, m.ID, Win("c1"))
	require.NoError(t, err)

	require.NotNil(t, report.EliminatedID)
	assert.Equal(t, "c2", *report.EliminatedID)
	assert.False(t, agg.Contestant("c2").Active)
	assert.True(t, agg.Contestant("c1").Active)
}

func TestProcessResultRejectsDrawInKnockout(t *testing.T) {
	agg := testTournament(models.FormatKnockout, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	_, err := ProcessResult(agg, m.ID, Draw())
	assert.ErrorIs(t, err, ErrIllegalDraw)
}

func TestProcessResultRejectsDrawWhenGameDisallowsIt(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	agg.AllowsDraw = false
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	_, err := ProcessResult(agg, m.ID, Draw())
	assert.ErrorIs(t, err, ErrIllegalDraw)
}

func TestProcessResultValidation(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")

	t.Run("unknown match", func(t *testing.T) {
		_, err := ProcessResult(agg, "no-such-match", Win("c1"))
		assert.ErrorIs(t, err, ErrUnknownMatch)
	})

	t.Run("winner not in match", func(t *testing.T) {
		_, err := ProcessResult(agg, m.ID, Win("c9"))
		assert.ErrorIs(t, err, ErrInvalidOutcome)
	})

	t.Run("negative score", func(t *testing.T) {
		_, err := ProcessResult(agg, m.ID, Win("c1").WithScores(-1, 0))
		assert.ErrorIs(t, err, ErrInvalidOutcome)
	})

	t.Run("draw with unequal scores", func(t *testing.T) {
		_, err := ProcessResult(agg, m.ID, Draw().WithScores(2, 1))
		assert.ErrorIs(t, err, ErrInvalidOutcome)
	})

	t.Run("scoreline contradicts winner", func(t *testing.T) {
		_, err := ProcessResult(agg, m.ID, Win("c1").WithScores(0, 2))
		assert.ErrorIs(t, err, ErrInvalidOutcome)
	})

	t.Run("double report", func(t *testing.T) {
		_, err := ProcessResult(agg, m.ID, Win("c1"))
		require.NoError(t, err)
		_, err = ProcessResult(agg, m.ID, Win("c2"))
		assert.ErrorIs(t, err, ErrAlreadyPlayed)
	})

	t.Run("finished tournament", func(t *testing.T) {
		agg.Finished = true
		_, err := ProcessResult(agg, m.ID, Win("c1"))
		assert.ErrorIs(t, err, ErrTournamentFinished)
	})
}

func TestProcessResultAssignsPlaySequence(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500, 1400, 1300)
	generate(t, agg)
	matches := agg.CurrentMatches()
	require.Len(t, matches, 2)

	_, err := ProcessResult(agg, matches[1].ID, Win(matches[1].P1ID))
	require.NoError(t, err)
	_, err = ProcessResult(agg, matches[0].ID, Win(matches[0].P1ID))
	require.NoError(t, err)

	assert.Equal(t, 1, matches[1].PlaySeq)
	assert.Equal(t, 2, matches[0].PlaySeq)
	assert.Equal(t, matches[0].ID, agg.LastPlayedMatch().ID)
}
