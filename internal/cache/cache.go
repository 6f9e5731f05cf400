// Package cache is an optional Redis-backed store of definitive validation
// outcomes, so repeated runs skip directory lookups for addresses
// already resolved.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Store caches exists/not-exists answers keyed by canonical address.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for cached outcomes. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Store connecting to the given Redis address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "vw:number:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(address string) string {
	return s.prefix + address
}

// Get returns the cached answer for the address. found is false on a miss.
func (s *Store) Get(ctx context.Context, address string) (exists, found bool, err error) {
	val, err := s.client.Get(ctx, s.key(address)).Result()
	if err != nil {
		if err == backend.Nil {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to get from redis: %w", err)
	}

	exists, err = strconv.ParseBool(val)
	if err != nil {
		// Corrupt entry; treat as a miss so it gets rewritten.
		return false, false, nil
	}
	return exists, true, nil
}

// Put stores a definitive answer for the address.
func (s *Store) Put(ctx context.Context, address string, exists bool) error {
	err := s.client.Set(ctx, s.key(address), strconv.FormatBool(exists), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
