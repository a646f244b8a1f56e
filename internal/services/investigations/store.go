package investigations

import (
	"context"
	"sync"
	"time"

	"aura/internal/domain"
)

type entry struct {
	mu       sync.Mutex
	inv      domain.Investigation
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once
}

func (e *entry) markDone() { e.doneOnce.Do(func() { close(e.done) }) }

// Store holds every investigation that has not been swept yet.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) put(e *entry) {
	s.mu.Lock()
	s.entries[e.inv.ID] = e
	s.mu.Unlock()
}

func (s *Store) get(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops investigations created before now-maxAge. Investigations still
// running at that point are cancelled first.
func (s *Store) Sweep(now time.Time, maxAge time.Duration) int {
	cutoff := now.Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		e.mu.Lock()
		expired := e.inv.CreatedAt.Before(cutoff)
		running := !e.inv.Status.Terminal()
		if expired && running {
			e.inv.Status = domain.StatusStopped
			e.inv.CompletedAt = &now
		}
		e.mu.Unlock()
		if !expired {
			continue
		}
		if running {
			e.cancel()
			e.markDone()
		}
		delete(s.entries, id)
		removed++
	}
	return removed
}
