package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwise/tournament-engine/models"
	"github.com/playwise/tournament-engine/repositories"
)

const (
	minTournamentNameLength = 3
	maxTournamentNameLength = 50
	defaultRating           = 1000
)

// ContestantInput is one entry of the finalized contestant set handed over by
// the registration layer. Membership is immutable for the whole tournament.
type ContestantInput struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// CreateTournamentParams describes a new tournament. Scheme and AllowsDraw
// are optional; they default to the format's convention.
type CreateTournamentParams struct {
	Name        string              `json:"name"`
	Game        string              `json:"game"`
	Format      models.FormatType   `json:"format"`
	AllowsDraw  *bool               `json:"allows_draw,omitempty"`
	Scheme      *models.PointScheme `json:"scheme,omitempty"`
	Contestants []ContestantInput   `json:"contestants"`
}

// StandingRow is one line of the ranked leaderboard.
type StandingRow struct {
	Rank          int     `json:"rank"`
	ContestantID  string  `json:"contestant_id"`
	Name          string  `json:"name"`
	Rating        int     `json:"rating"`
	Active        bool    `json:"active"`
	MatchesPlayed int     `json:"matches_played"`
	Won           int     `json:"won"`
	Drawn         int     `json:"drawn"`
	Lost          int     `json:"lost"`
	Points        float64 `json:"points"`
	ScoreFor      int     `json:"score_for"`
	ScoreAgainst  int     `json:"score_against"`
	ScoreDiff     int     `json:"score_diff"`
}

type TournamentService interface {
	Create(ctx context.Context, params CreateTournamentParams) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	Standings(ctx context.Context, id string) ([]StandingRow, error)
}

type tournamentService struct {
	repo   repositories.TournamentRepository
	locks  *AggregateLocks
	logger *slog.Logger
}

func NewTournamentService(repo repositories.TournamentRepository, locks *AggregateLocks, logger *slog.Logger) TournamentService {
	return &tournamentService{repo: repo, locks: locks, logger: logger}
}

func (s *tournamentService) Create(ctx context.Context, params CreateTournamentParams) (*models.Tournament, error) {
	if err := validateCreateParams(&params); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &models.Tournament{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		Game:         strings.TrimSpace(params.Game),
		Format:       params.Format,
		Scheme:       models.DefaultScheme(params.Format),
		AllowsDraw:   params.Format != models.FormatKnockout,
		CurrentRound: 1,
		TotalRounds:  models.TotalRounds(params.Format, len(params.Contestants)),
		CreatedAt:    now,
		Contestants:  make(map[string]*models.Contestant, len(params.Contestants)),
	}
	if params.Scheme != nil {
		t.Scheme = *params.Scheme
	}
	if params.AllowsDraw != nil {
		t.AllowsDraw = *params.AllowsDraw
	}

	for _, in := range params.Contestants {
		rating := in.Rating
		if rating == 0 {
			rating = defaultRating
		}
		c := &models.Contestant{
			ID:     uuid.NewString(),
			Name:   strings.TrimSpace(in.Name),
			Rating: rating,
			Active: true,
		}
		t.Contestants[c.ID] = c
	}
	applySeeding(t)

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info("tournament created",
		slog.String("tournament_id", t.ID),
		slog.String("format", string(t.Format)),
		slog.Int("contestants", len(t.Contestants)),
		slog.Int("total_rounds", t.TotalRounds))
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	mu := s.locks.forTournament(id)
	mu.Lock()
	defer mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	s.locks.release(id)
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	return nil
}

func (s *tournamentService) Standings(ctx context.Context, id string) ([]StandingRow, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ranked := t.Standings()
	rows := make([]StandingRow, 0, len(ranked))
	for i, c := range ranked {
		rows = append(rows, StandingRow{
			Rank:          i + 1,
			ContestantID:  c.ID,
			Name:          c.Name,
			Rating:        c.Rating,
			Active:        c.Active,
			MatchesPlayed: c.MatchesPlayed,
			Won:           c.Won,
			Drawn:         c.Drawn,
			Lost:          c.Lost,
			Points:        c.Points,
			ScoreFor:      c.ScoreFor,
			ScoreAgainst:  c.ScoreAgainst,
			ScoreDiff:     c.ScoreDiff(),
		})
	}
	return rows, nil
}

// applySeeding numbers contestants 1..n by descending rating. Seeds are
// informational once pairing starts; the strategies re-sort on live data.
func applySeeding(t *models.Tournament) {
	ordered := make([]*models.Contestant, 0, len(t.Contestants))
	for _, c := range t.Contestants {
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Rating > ordered[j].Rating
	})
	for i, c := range ordered {
		c.Seed = i + 1
	}
}

func validateCreateParams(params *CreateTournamentParams) error {
	name := strings.TrimSpace(params.Name)
	if len(name) < minTournamentNameLength || len(name) > maxTournamentNameLength {
		return fmt.Errorf("%w: name must be %d-%d characters",
			ErrTournamentNameRequired, minTournamentNameLength, maxTournamentNameLength)
	}
	if !params.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, params.Format)
	}
	if len(params.Contestants) < 2 {
		return fmt.Errorf("%w: got %d", ErrNotEnoughContestants, len(params.Contestants))
	}
	seen := make(map[string]bool, len(params.Contestants))
	for _, c := range params.Contestants {
		n := strings.ToLower(strings.TrimSpace(c.Name))
		if n == "" {
			return ErrContestantNameRequired
		}
		if seen[n] {
			return fmt.Errorf("%w: %q", ErrDuplicateContestantName, c.Name)
		}
		seen[n] = true
		if c.Rating < 0 {
			return fmt.Errorf("%w: rating for %q", ErrValidationFailed, c.Name)
		}
	}
	if params.Scheme != nil &&
		(params.Scheme.Win < 0 || params.Scheme.Draw < 0 || params.Scheme.Bye < 0) {
		return ErrInvalidPointScheme
	}
	return nil
}
