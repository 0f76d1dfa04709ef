package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/playwise/tournament-engine/models"
	"github.com/playwise/tournament-engine/repositories"
	"github.com/playwise/tournament-engine/storage"
)

const archiveConcurrency = 4

// ArchiveService uploads finished tournament snapshots to blob storage.
// Archiving is strictly best-effort: the in-memory aggregate and its primary
// persistence never depend on an upload succeeding.
type ArchiveService struct {
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewArchiveService(repo repositories.TournamentRepository, uploader storage.FileUploader, logger *slog.Logger) *ArchiveService {
	return &ArchiveService{repo: repo, uploader: uploader, logger: logger}
}

// ArchiveTournament uploads one tournament's full JSON snapshot.
func (s *ArchiveService) ArchiveTournament(ctx context.Context, t *models.Tournament) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot of tournament %s: %w", t.ID, err)
	}

	key := fmt.Sprintf("tournaments/%s.json", t.ID)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to upload snapshot of tournament %s: %w", t.ID, err)
	}

	s.logger.Info("tournament snapshot archived",
		slog.String("tournament_id", t.ID),
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return nil
}

// ArchiveFinishedSnapshots re-uploads snapshots for every finished tournament.
// Run periodically it backfills uploads that failed at finish time.
func (s *ArchiveService) ArchiveFinishedSnapshots(ctx context.Context) error {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tournaments for archiving: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(archiveConcurrency)
	for _, t := range tournaments {
		if !t.Finished {
			continue
		}
		t := t
		g.Go(func() error {
			return s.ArchiveTournament(gCtx, t)
		})
	}
	return g.Wait()
}
