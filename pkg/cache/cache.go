// Package cache provides pluggable byte caching for pipeline stages.
//
// Loading and parsing the station CSVs is cheap, but metrics and layout
// rendering are not, so the pipeline caches derived artifacts keyed by the
// content hash of their inputs. Backends share one small interface; the
// file backend serves the CLI and the Redis backend serves shared setups.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact class.
const (
	// TTLReport applies to computed metrics reports. Inputs are keyed by
	// content hash, so entries only go stale when the eviction policy says so.
	TTLReport = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs (SVG, PNG, DOT).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal byte cache contract shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts captures the render parameters that distinguish two
// artifacts derived from the same network.
type ArtifactKeyOpts struct {
	Format string
	Engine string
	Seed   uint64
	Width  int
	Height int
}

// Keyer generates cache keys for the pipeline's cached stages.
// Implementations must be deterministic: identical inputs yield
// identical keys across processes.
type Keyer interface {
	// ReportKey keys a metrics report by the content hash of the loaded data.
	ReportKey(networkHash string) string

	// ArtifactKey keys a rendered artifact by network hash and render options.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for metrics report caching.
func (k *DefaultKeyer) ReportKey(networkHash string) string {
	return "report:" + networkHash
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts.Format, opts.Engine, opts.Seed, opts.Width, opts.Height)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
