// Package cache provides storage for computed route reports and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entries under a local directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// All backends implement [Cache]. Keys are produced by a [Keyer] so that the
// same request against the same graph always maps to the same entry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// RouteKey returns the key for a route report computed on the graph
	// identified by graphHash. request is any JSON-encodable description of
	// the request, including every option that changes the result.
	RouteKey(graphHash string, request any) string

	// RenderKey returns the key for a rendered artifact of the graph
	// identified by graphHash.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts holds the options that change a rendered artifact.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Highlight []int  `json:"highlight,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RouteKey implements Keyer.
func (DefaultKeyer) RouteKey(graphHash string, request any) string {
	return hashKey("route", graphHash, request)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
