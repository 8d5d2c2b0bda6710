// Package redis provides a store.Store backed by a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/litnotes/litnotes/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces LitNotes keys in a shared Redis database.
const DefaultPrefix = "litnotes:"

// Options configures Open.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Defaults to DefaultPrefix
	Logger   *slog.Logger
}

// Store keeps each key as a plain Redis string.
type Store struct {
	client *goredis.Client
	prefix string
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to Redis and verifies the connection with a PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("Redis connection established", "addr", opts.Addr, "prefix", prefix)

	return &Store{client: client, prefix: prefix, logger: logger}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close releases the client's connections.
func (s *Store) Close() error {
	return s.client.Close()
}
