// Package cache provides a small TTL cache used to serve the stats endpoint
// without recounting on every request. Two backends exist: an in-process map
// for single-node deployments and Valkey for shared deployments.
package cache

import (
	"context"
	"time"
)

// Cache stores string values under string keys with an expiry.
type Cache interface {
	// Get returns the value for key, or false if absent or expired.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases any backend resources.
	Close()
}
