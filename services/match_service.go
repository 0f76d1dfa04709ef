package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playwise/tournament-engine/engine"
	"github.com/playwise/tournament-engine/live"
	"github.com/playwise/tournament-engine/models"
	"github.com/playwise/tournament-engine/repositories"
)

// ReportedOutcome is the wire form of an engine outcome: either a winner id
// or a draw, with an optional explicit scoreline.
type ReportedOutcome struct {
	WinnerID string `json:"winner_id,omitempty"`
	Draw     bool   `json:"draw,omitempty"`
	P1Score  *int   `json:"p1_score,omitempty"`
	P2Score  *int   `json:"p2_score,omitempty"`
}

func (o ReportedOutcome) toEngine() (engine.Outcome, error) {
	var out engine.Outcome
	switch {
	case o.Draw && o.WinnerID != "":
		return out, fmt.Errorf("%w: both draw and winner reported", engine.ErrInvalidOutcome)
	case o.Draw:
		out = engine.Draw()
	case o.WinnerID != "":
		out = engine.Win(o.WinnerID)
	default:
		return out, fmt.Errorf("%w: neither draw nor winner reported", engine.ErrInvalidOutcome)
	}
	if (o.P1Score == nil) != (o.P2Score == nil) {
		return out, fmt.Errorf("%w: partial scoreline", engine.ErrInvalidOutcome)
	}
	if o.P1Score != nil {
		out = out.WithScores(*o.P1Score, *o.P2Score)
	}
	return out, nil
}

// RoundView is the controller's answer after an advance attempt.
type RoundView struct {
	State        engine.State `json:"state"`
	CurrentRound int          `json:"current_round"`
	TotalRounds  int          `json:"total_rounds"`
	Finished     bool         `json:"finished"`
	WinnerID     *string      `json:"winner_id,omitempty"`
	Progress     float64      `json:"progress"`
}

// MatchService drives the engine over persisted aggregates: every call loads
// the tournament, mutates it in memory under the aggregate lock, saves it and
// broadcasts the change. The in-memory mutation is complete before the save
// is attempted, so a failed save never leaves a half-updated aggregate.
type MatchService interface {
	GenerateFixtures(ctx context.Context, tournamentID string) (int, error)
	ReportResult(ctx context.Context, tournamentID, matchID string, outcome ReportedOutcome) (*engine.Report, error)
	UndoLastResult(ctx context.Context, tournamentID string) (*models.Match, error)
	AdvanceRound(ctx context.Context, tournamentID string) (*RoundView, error)
	ListMatches(ctx context.Context, tournamentID string, round *int) ([]*models.Match, error)
	State(ctx context.Context, tournamentID string) (*RoundView, error)
}

type matchService struct {
	repo     repositories.TournamentRepository
	locks    *AggregateLocks
	hub      *live.Hub
	archiver *ArchiveService
	logger   *slog.Logger
}

func NewMatchService(
	repo repositories.TournamentRepository,
	locks *AggregateLocks,
	hub *live.Hub,
	archiver *ArchiveService,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		repo:     repo,
		locks:    locks,
		hub:      hub,
		archiver: archiver,
		logger:   logger,
	}
}

func (s *matchService) GenerateFixtures(ctx context.Context, tournamentID string) (int, error) {
	mu := s.locks.forTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	created, genErr := engine.GenerateFixtures(ctx, t)
	// A failed-closed generation still finished the tournament; that state
	// change must be persisted even though no fixtures were created.
	if genErr != nil && !errors.Is(genErr, engine.ErrNotEnoughActiveContestants) {
		return 0, genErr
	}
	if err := s.save(ctx, t); err != nil {
		return 0, err
	}
	if genErr != nil {
		s.afterFinish(ctx, t)
		return 0, genErr
	}

	s.logger.Info("fixtures generated",
		slog.String("tournament_id", t.ID),
		slog.Int("round", t.CurrentRound),
		slog.Int("matches", created))
	s.hub.Broadcast(live.EventFixturesGenerated, t.ID, map[string]interface{}{
		"round":   t.CurrentRound,
		"matches": t.CurrentMatches(),
	})
	return created, nil
}

func (s *matchService) ReportResult(ctx context.Context, tournamentID, matchID string, outcome ReportedOutcome) (*engine.Report, error) {
	engineOutcome, err := outcome.toEngine()
	if err != nil {
		return nil, err
	}

	mu := s.locks.forTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	report, err := engine.ProcessResult(t, matchID, engineOutcome)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("result recorded",
		slog.String("tournament_id", t.ID),
		slog.String("match_id", matchID),
		slog.Int("round", report.Round),
		slog.String("summary", report.Line()))
	s.hub.BroadcastReport(t.ID, report)
	return report, nil
}

func (s *matchService) UndoLastResult(ctx context.Context, tournamentID string) (*models.Match, error) {
	mu := s.locks.forTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	m, err := engine.UndoLastResult(t)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("result undone",
		slog.String("tournament_id", t.ID),
		slog.String("match_id", m.ID),
		slog.Int("round", m.Round))
	s.hub.BroadcastStandings(t, live.EventResultUndone)
	return m, nil
}

func (s *matchService) AdvanceRound(ctx context.Context, tournamentID string) (*RoundView, error) {
	mu := s.locks.forTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	state, err := engine.AdvanceRound(t)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	if state == engine.StateFinished {
		s.afterFinish(ctx, t)
	} else {
		s.logger.Info("round advanced",
			slog.String("tournament_id", t.ID),
			slog.Int("round", t.CurrentRound))
		s.hub.BroadcastStandings(t, live.EventRoundAdvanced)
	}
	return roundView(t, state), nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID string, round *int) ([]*models.Match, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return t.Matches, nil
	}
	matches := t.MatchesByRound(*round)
	if matches == nil {
		matches = []*models.Match{}
	}
	return matches, nil
}

func (s *matchService) State(ctx context.Context, tournamentID string) (*RoundView, error) {
	t, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return roundView(t, engine.StateOf(t)), nil
}

func (s *matchService) load(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return t, nil
}

func (s *matchService) save(ctx context.Context, t *models.Tournament) error {
	if err := s.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to save tournament %s: %w", t.ID, err)
	}
	return nil
}

// afterFinish runs the terminal-state side effects: the finished broadcast
// and the best-effort snapshot archive.
func (s *matchService) afterFinish(ctx context.Context, t *models.Tournament) {
	s.logger.Info("tournament finished",
		slog.String("tournament_id", t.ID),
		slog.Any("winner_id", t.WinnerID))
	s.hub.BroadcastStandings(t, live.EventTournamentFinished)

	if s.archiver != nil {
		if err := s.archiver.ArchiveTournament(ctx, t); err != nil {
			s.logger.Warn("snapshot archive failed",
				slog.String("tournament_id", t.ID), slog.Any("error", err))
		}
	}
}

func roundView(t *models.Tournament, state engine.State) *RoundView {
	return &RoundView{
		State:        state,
		CurrentRound: t.CurrentRound,
		TotalRounds:  t.TotalRounds,
		Finished:     t.Finished,
		WinnerID:     t.WinnerID,
		Progress:     t.Progress(),
	}
}
