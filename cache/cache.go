// Package cache stores raw TMDB response bodies keyed by request URL.
//
// Two backends are provided: Memory, an LRU bounded in-process cache, and
// Store, a BoltDB file that survives restarts. Both expire entries after a
// fixed TTL.
package cache

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
)

// Backend is a response cache that can be released
type Backend interface {
	Get(key string) ([]byte, bool)
	Put(key string, body []byte) error
	Len() int
	Close() error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*Store)(nil)
)

// Options configures New
type Options struct {
	Backend string
	Path    string
	TTL     time.Duration
	Size    int
}

// New creates the backend selected by opts
func New(opts Options, logger zerolog.Logger) (Backend, error) {
	switch opts.Backend {
	case BackendMemory:
		if opts.TTL <= 0 {
			return nil, fmt.Errorf("cache ttl must be positive, got %s", opts.TTL)
		}
		return NewMemory(opts.Size, opts.TTL), nil
	case BackendBolt, "":
		store, err := Open(opts.Path, opts.TTL, logger)
		if err != nil {
			return nil, err
		}
		if _, err := store.Purge(); err != nil {
			logger.Warn().Err(err).Msg("Failed to purge expired cache entries")
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be '%s' or '%s')", opts.Backend, BackendBolt, BackendMemory)
	}
}
