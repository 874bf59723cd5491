// Package redis keeps ledger slots as plain redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"crediario/internal/storage"
)

// DefaultPrefix namespaces slot keys inside a shared redis database.
const DefaultPrefix = "crediario:"

type Store struct {
	client *goredis.Client
	prefix string
}

// New parses redisURL, connects, and waits until the server answers a PING.
func New(ctx context.Context, redisURL, prefix string) (*Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	s := NewWithClient(client, prefix)
	if err := backoff.Retry(func() error {
		return s.Ping(ctx)
	}, backoff.WithContext(connectBackoff(), ctx)); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

// NewWithClient wraps an existing client without checking connectivity.
func NewWithClient(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func connectBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 10 * time.Second
	return b
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
