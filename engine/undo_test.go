package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playwise/tournament-engine/models"
)

func TestUndoReversesWin(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")
	_, err := ProcessResult(agg, m.ID, Win("c1").WithScores(2, 1))
	require.NoError(t, err)

	undone, err := UndoLastResult(agg)
	require.NoError(t, err)
	assert.Equal(t, m.ID, undone.ID)

	for _, id := range []string{"c1", "c2"} {
		c := agg.Contestant(id)
		assert.Zero(t, c.MatchesPlayed, id)
		assert.Zero(t, c.Won, id)
		assert.Zero(t, c.Lost, id)
		assert.Zero(t, c.Points, id)
		assert.Zero(t, c.ScoreFor, id)
		assert.Zero(t, c.ScoreAgainst, id)
		assert.Empty(t, c.OpponentHistory, id)
	}

	assert.False(t, m.Played)
	assert.Zero(t, m.P1Score)
	assert.Zero(t, m.P2Score)
	assert.Nil(t, m.WinnerID)
	assert.Nil(t, m.PlayedAt)
	assert.Zero(t, m.PlaySeq)
	assert.Empty(t, agg.History)
	assert.Nil(t, agg.LastPlayedMatch())
}

func TestUndoReversesDraw(t *testing.T) {
	agg := testTournament(models.FormatSwiss, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")
	_, err := ProcessResult(agg, m.ID, Draw())
	require.NoError(t, err)

	_, err = UndoLastResult(agg)
	require.NoError(t, err)

	assert.Zero(t, agg.Contestant("c1").Drawn)
	assert.Zero(t, agg.Contestant("c2").Drawn)
	assert.Zero(t, agg.Contestant("c1").Points)
	assert.False(t, m.Draw)
}

func TestUndoReversesBye(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500, 1400)
	generate(t, agg)
	bye := byeMatch(t, agg)
	c := agg.Contestant(bye.P1ID)
	require.Equal(t, agg.Scheme.Bye, c.Points)

	undone, err := UndoLastResult(agg)
	require.NoError(t, err)
	assert.Equal(t, bye.ID, undone.ID)
	assert.Zero(t, c.Points)
	assert.Zero(t, c.Won)
	assert.Zero(t, c.MatchesPlayed)
	assert.False(t, bye.Played)
}

func TestUndoReactivatesKnockoutLoser(t *testing.T) {
	agg := testTournament(models.FormatKnockout, 1600, 1500)
	generate(t, agg)
	m := matchBetween(t, agg, "c1", "c2")
	_, err := ProcessResult(agg, m.ID, Win("c1"))
	require.NoError(t, err)
	require.False(t, agg.Contestant("c2").Active)

	_, err = UndoLastResult(agg)
	require.NoError(t, err)
	assert.True(t, agg.Contestant("c2").Active)
}

func TestUndoUndoesOnlyMostRecentResult(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500, 1400, 1300)
	generate(t, agg)
	matches := agg.CurrentMatches()
	_, err := ProcessResult(agg, matches[0].ID, Win(matches[0].P1ID))
	require.NoError(t, err)
	_, err = ProcessResult(agg, matches[1].ID, Win(matches[1].P1ID))
	require.NoError(t, err)

	undone, err := UndoLastResult(agg)
	require.NoError(t, err)
	assert.Equal(t, matches[1].ID, undone.ID)
	assert.True(t, matches[0].Played, "the earlier result must stand")

	// The previous result becomes undoable in turn.
	undone, err = UndoLastResult(agg)
	require.NoError(t, err)
	assert.Equal(t, matches[0].ID, undone.ID)
}

func TestUndoKeepsHistoryOfRepeatMeetings(t *testing.T) {
	agg := testTournament(models.FormatSwiss, 1600, 1500)
	generate(t, agg)
	playRound(t, agg)
	_, err := AdvanceRound(agg)
	require.NoError(t, err)

	// Two contestants force a rematch in round 2.
	generate(t, agg)
	playRound(t, agg)

	_, err = UndoLastResult(agg)
	require.NoError(t, err)
	assert.True(t, agg.Contestant("c1").HasPlayed("c2"),
		"the round 1 meeting keeps the pair in each other's history")
}

func TestUndoRefusedAcrossRoundBoundary(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500, 1400, 1300)
	generate(t, agg)
	playRound(t, agg)
	_, err := AdvanceRound(agg)
	require.NoError(t, err)

	_, err = UndoLastResult(agg)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoRefusedWithNothingPlayed(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)

	_, err := UndoLastResult(agg)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoRefusedWhenFinished(t *testing.T) {
	agg := testTournament(models.FormatLeague, 1600, 1500)
	generate(t, agg)
	playRound(t, agg)
	_, err := AdvanceRound(agg)
	require.NoError(t, err)
	require.True(t, agg.Finished)

	_, err = UndoLastResult(agg)
	assert.ErrorIs(t, err, ErrTournamentFinished)
}
