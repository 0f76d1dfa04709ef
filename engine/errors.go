package engine

import "errors"

// Engine error taxonomy. All of these are recoverable: the caller is expected
// to re-prompt the operator, none are fatal.
var (
	ErrNotEnoughActiveContestants = errors.New("not enough active contestants")
	ErrFixturesAlreadyGenerated   = errors.New("fixtures already generated for the current round")
	ErrUnknownMatch               = errors.New("match does not belong to this tournament")
	ErrAlreadyPlayed              = errors.New("match result already recorded")
	ErrIllegalDraw                = errors.New("draw is not permitted")
	ErrRoundIncomplete            = errors.New("current round still has unplayed matches")
	ErrTournamentFinished         = errors.New("tournament is finished")
	ErrInvalidOutcome             = errors.New("invalid outcome")
	ErrNothingToUndo              = errors.New("no played match to undo")
)
