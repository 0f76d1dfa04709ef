package services

import "sync"

// AggregateLocks serializes all mutations of one tournament aggregate.
// Fixture generation and result processing both read-then-write contestant
// state; interleaving them on the same tournament would corrupt the round
// bookkeeping, so the whole aggregate is the unit of mutual exclusion.
type AggregateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAggregateLocks builds the shared lock registry; one instance is wired
// into every service touching tournament aggregates.
func NewAggregateLocks() *AggregateLocks {
	return &AggregateLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *AggregateLocks) forTournament(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[id]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.locks[id] = m
	return m
}

func (l *AggregateLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, id)
}
