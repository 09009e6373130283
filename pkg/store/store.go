// Package store persists named projects: a project is a scene
// configuration saved under a user-chosen name so a layout can be
// rebuilt and re-exported later.
//
// Backends:
//   - memory: in-process storage for development and tests
//   - file: TOML files under a config directory, for the CLI
//   - mongo: document storage for the server
package store

import (
	"context"
	"time"

	"github.com/mkarlsen/pvscene/pkg/errors"
	"github.com/mkarlsen/pvscene/pkg/observability"
	"github.com/mkarlsen/pvscene/pkg/scene"
)

// Project is a named scene configuration.
type Project struct {
	Name      string       `json:"name" toml:"name" bson:"_id"`
	Config    scene.Config `json:"config" toml:"config" bson:"config"`
	CreatedAt time.Time    `json:"created_at" toml:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" toml:"updated_at" bson:"updated_at"`
}

// NewProject creates a project with timestamps set.
func NewProject(name string, cfg scene.Config) (*Project, error) {
	if err := errors.ValidateProjectName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Project{Name: name, Config: cfg, CreatedAt: now, UpdatedAt: now}, nil
}

// Store is the interface for project persistence backends.
type Store interface {
	// Get retrieves a project by name. A missing project reports
	// errors.ErrCodeProjectNotFound.
	Get(ctx context.Context, name string) (*Project, error)

	// Put creates or replaces a project. UpdatedAt is refreshed;
	// CreatedAt of an existing project is preserved.
	Put(ctx context.Context, p *Project) error

	// Delete removes a project. Deleting an absent project is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns all project names, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeProjectNotFound, "project %q not found", name)
}

// observeLoad and observeSave report store traffic to the registered
// hooks. Every backend emits them from Get and Put so instrumentation
// sees file, memory, and mongo access alike.
func observeLoad(ctx context.Context, name string, start time.Time, err error) {
	observability.Store().OnLoad(ctx, name, time.Since(start), err)
}

func observeSave(ctx context.Context, name string, start time.Time, err error) {
	observability.Store().OnSave(ctx, name, time.Since(start), err)
}
