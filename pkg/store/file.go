package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mkarlsen/pvscene/pkg/errors"
)

// FileStore keeps each project as a TOML file so users can read and
// edit saved layouts by hand.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based project store.
// If baseDir is empty, defaults to ~/.config/pvscene/projects/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "pvscene", "projects")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) projectPath(name string) string {
	return filepath.Join(s.baseDir, name+".toml")
}

// Get retrieves a project by name.
func (s *FileStore) Get(ctx context.Context, name string) (_ *Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, name, start, err) }()

	if err := errors.ValidateProjectName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.projectPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading project %q", name)
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parsing project %q", name)
	}
	p.Name = name
	return &p, nil
}

// Put creates or replaces a project file.
func (s *FileStore) Put(ctx context.Context, p *Project) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, p.Name, start, err) }()

	if err := errors.ValidateProjectName(p.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	if prev, err := s.readLocked(p.Name); err == nil {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(stored); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding project %q", p.Name)
	}
	if err := os.WriteFile(s.projectPath(p.Name), []byte(buf.String()), 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing project %q", p.Name)
	}
	return nil
}

func (s *FileStore) readLocked(name string) (*Project, error) {
	data, err := os.ReadFile(s.projectPath(name))
	if err != nil {
		return nil, err
	}
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateProjectName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.projectPath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "removing project %q", name)
	}
	return nil
}

// List returns all project names, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading project dir")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for project files.
func (s *FileStore) Path() string { return s.baseDir }

var _ Store = (*FileStore)(nil)
