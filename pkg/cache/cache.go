// Package cache provides content-addressed caching for rendered artifacts.
//
// Rendering a task graph to SVG or PNG shells out to Graphviz, which is the
// slowest step in the CLI and the HTTP API. Because task synthesis is
// deterministic, the DOT text is a complete fingerprint of the output:
// identical DOT plus identical format always renders identical bytes. The
// cache keys artifacts by that fingerprint, so a re-render of an unchanged
// project is a lookup.
//
// Two backends are provided:
//   - file: artifacts on disk for CLI usage
//   - null: disabled caching for tests and one-shot runs
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores rendered artifact bytes under content-derived keys.
type Cache interface {
	// Get retrieves a cached artifact. The second result reports whether
	// the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A ttl of 0 means no expiration; content-keyed
	// entries never go stale, so expiration only bounds disk usage.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an artifact.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey derives the cache key for a rendered artifact from the DOT
// source and the output format. Same DOT, same format, same key.
func ArtifactKey(dot []byte, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, Hash(dot))
}
