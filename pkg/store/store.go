// Package store provides project persistence backends.
//
// This package defines the ProjectStore interface with implementations for
// different deployments:
//   - memory: In-memory storage for development/testing
//   - file: JSON files on disk for CLI use
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable multi-project deployments
//
// # Usage
//
// Create a store and wire it to an engine's persistence callback:
//
//	st, err := store.NewFileStore("")  // Uses ~/.config/floorlay/projects/
//	if err != nil {
//	    return err
//	}
//	eng, err := engine.New(project, engine.Options{
//	    OnProjectChange: func(p *plan.Project) { st.Put(ctx, p) },
//	})
//
// Get returns nil, nil when the project does not exist; callers decide
// whether absence is an error.
package store

import (
	"context"

	"github.com/floorlay/floorlay/pkg/plan"
)

// ProjectStore is the interface for project persistence backends. Every
// snapshot passed to Put must already satisfy the project invariants; the
// store persists, it does not validate.
type ProjectStore interface {
	// Get retrieves a project by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*plan.Project, error)

	// Put stores a project snapshot, replacing any previous snapshot with
	// the same ID.
	Put(ctx context.Context, p *plan.Project) error

	// Delete removes a project. Deleting a missing project is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored projects in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
