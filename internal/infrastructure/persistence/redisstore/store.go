// Package redisstore keeps the JSON collections in Redis under a common key prefix.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

// Store implements port.KVStore over a redis client
type Store struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewStore parses url and connects. An empty prefix stores keys verbatim.
func NewStore(ctx context.Context, url, prefix string, logger *zap.Logger) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", opts.Addr), zap.String("prefix", prefix))
	return NewStoreWithClient(client, prefix, logger), nil
}

// NewStoreWithClient wraps an existing client
func NewStoreWithClient(client *redis.Client, prefix string, logger *zap.Logger) *Store {
	return &Store{client: client, prefix: prefix, logger: logger}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get reads one value; redis.Nil maps to not found
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes one value without expiry
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.logger.Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes one key
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys scans the prefix and returns the unprefixed keys in order
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the client
func (s *Store) Close() error {
	return s.client.Close()
}

var _ port.KVStore = (*Store)(nil)
