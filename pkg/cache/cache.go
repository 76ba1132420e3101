// Package cache stores rendered graph artifacts so that repeated renders of
// an unchanged catalog and progress skip Graphviz.
//
// Keys are derived from the DOT source and the output options with
// [ArtifactKey]; any change to the drawn graph yields a new key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey identifies a rendered artifact: format is the output format
// and scale the raster scale factor, ignored for vector formats.
func ArtifactKey(dot, format string, scale float64) string {
	if format != "png" {
		scale = 0
	}
	return fmt.Sprintf("artifact:%s:%s:%s", format, strconv.FormatFloat(scale, 'g', -1, 64), Hash([]byte(dot)))
}

type nullCache struct{}

// NewNullCache returns a Cache that stores nothing and always misses.
// It backs --no-cache.
func NewNullCache() Cache { return nullCache{} }

func (nullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }
func (nullCache) Close() error                                             { return nil }
