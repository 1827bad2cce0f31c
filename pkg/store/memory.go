package store

import (
	"context"
	"sync"

	"github.com/floorlay/floorlay/pkg/plan"
)

// MemoryStore is an in-memory project store for development and testing.
// Snapshots are cloned on the way in and out, so callers never share
// mutable state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*plan.Project
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*plan.Project)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*plan.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, p *plan.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ ProjectStore = (*MemoryStore)(nil)
