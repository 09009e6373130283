package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mkarlsen/pvscene/pkg/errors"
)

// MemoryStore keeps projects in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]Project
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]Project)}
}

// Get retrieves a project by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (_ *Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, name, start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[name]
	if !ok {
		return nil, notFound(name)
	}
	out := p
	return &out, nil
}

// Put creates or replaces a project.
func (s *MemoryStore) Put(ctx context.Context, p *Project) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, p.Name, start, err) }()

	if err := errors.ValidateProjectName(p.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	if prev, ok := s.projects[p.Name]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	s.projects[p.Name] = stored
	return nil
}

// Delete removes a project.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.projects, name)
	s.mu.Unlock()
	return nil
}

// List returns all project names, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.projects))
	for name := range s.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
