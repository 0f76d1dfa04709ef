package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/playwise/tournament-engine/models"
)

// memoryTournamentRepository keeps aggregates in process memory. It backs the
// tests and doubles as a storage mode for throwaway events run without a
// database. Aggregates are deep-copied through JSON on the way in and out so
// callers never share mutable state with the store.
type memoryTournamentRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{items: make(map[string][]byte)}
}

func (r *memoryTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; ok {
		return ErrTournamentConflict
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.items[t.ID] = data
	return nil
}

func (r *memoryTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.items[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	t := &models.Tournament{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *memoryTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Tournament, 0, len(r.items))
	for _, data := range r.items {
		t := &models.Tournament{}
		if err := json.Unmarshal(data, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return ErrTournamentNotFound
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.items[t.ID] = data
	return nil
}

func (r *memoryTournamentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.items, id)
	return nil
}
