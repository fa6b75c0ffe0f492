package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

// Collection persists one value of type T as a JSON blob under a single key.
// A missing or malformed blob reads as the seed value.
type Collection[T any] struct {
	store  port.KVStore
	key    string
	seed   func() T
	logger *zap.Logger
}

// NewCollection creates a collection bound to key. seed is called for every fallback read.
func NewCollection[T any](store port.KVStore, key string, seed func() T, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		store:  store,
		key:    key,
		seed:   seed,
		logger: logger,
	}
}

// Key returns the storage key
func (c *Collection[T]) Key() string {
	return c.key
}

// Lookup decodes the stored value. found is false when the key is missing or unreadable.
func (c *Collection[T]) Lookup(ctx context.Context) (T, bool, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !found {
		return c.seed(), false, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.Error("Malformed collection, using defaults",
			zap.String("key", c.key),
			zap.Error(err))
		return c.seed(), false, nil
	}
	return value, true, nil
}

// Load returns the stored value or the seed
func (c *Collection[T]) Load(ctx context.Context) (T, error) {
	value, _, err := c.Lookup(ctx)
	return value, err
}

// Save replaces the stored value
func (c *Collection[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}

	c.logger.Debug("Collection saved", zap.String("key", c.key), zap.Int("bytes", len(raw)))
	return nil
}
