package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	// expiryLen is the size of the expiry prefix stored before each body
	expiryLen = 8
)

var bucketResponses = []byte("responses")

// Store is a persistent response cache backed by BoltDB. Each value holds
// the expiry as big-endian Unix nanoseconds followed by the response body.
type Store struct {
	db     *bolt.DB
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// Open opens or creates the cache database at path
func Open(path string, ttl time.Duration, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("cache path is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}

	if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, dbFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResponses)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Get returns the cached body for key unless it is missing or expired
func (s *Store) Get(key string) ([]byte, bool) {
	var body []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketResponses).Get([]byte(key))
		if len(v) < expiryLen {
			return nil
		}
		if s.expired(v) {
			return nil
		}
		// v is only valid inside the transaction
		body = slices.Clone(v[expiryLen:])
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read cache")
		return nil, false
	}

	return body, body != nil
}

// Put stores body under key for the configured TTL
func (s *Store) Put(key string, body []byte) error {
	v := make([]byte, expiryLen+len(body))
	binary.BigEndian.PutUint64(v[:expiryLen], uint64(s.now().Add(s.ttl).UnixNano()))
	copy(v[expiryLen:], body)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResponses).Put([]byte(key), v)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge deletes every expired entry and returns how many were removed
func (s *Store) Purge() (int, error) {
	removed := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResponses)

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			if len(v) < expiryLen || s.expired(v) {
				stale = append(stale, slices.Clone(k))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}

	s.logger.Debug().Int("removed", removed).Msg("Purged expired cache entries")
	return removed, nil
}

// Len returns the number of stored entries, expired ones included
func (s *Store) Len() int {
	n := 0
	_ = s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketResponses).Stats().KeyN
		return nil
	})
	return n
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) expired(v []byte) bool {
	expires := int64(binary.BigEndian.Uint64(v[:expiryLen]))
	return s.now().UnixNano() > expires
}
