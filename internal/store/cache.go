package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/averin/budgetwatch/models"
)

// GetJSON reads the value under key and decodes it into T. The second
// return value is false when the key is absent.
func GetJSON[T any](ctx context.Context, kv KeyValue, key string) (T, bool, error) {
	var out T

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}

	return out, true, nil
}

// SetJSON encodes value as JSON and stores it under key. The whole value
// is replaced in one write.
func SetJSON[T any](ctx context.Context, kv KeyValue, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return kv.Set(ctx, key, raw)
}

// Collection is a typed handle to one cached resource envelope. The
// staleness duration is supplied by the caller per resource kind: the
// budget list lives for weeks, per-budget resources for minutes.
type Collection[T any] struct {
	kv  KeyValue
	key string
	ttl time.Duration
}

// NewCollection builds a collection handle for the given key and
// staleness duration.
func NewCollection[T any](kv KeyValue, key string, ttl time.Duration) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, ttl: ttl}
}

// Key returns the durable-store key of the collection.
func (c *Collection[T]) Key() string { return c.key }

// Get reads the cached envelope. The second return value is false when
// the collection has never been stored.
func (c *Collection[T]) Get(ctx context.Context) (models.Envelope[T], bool, error) {
	return GetJSON[models.Envelope[T]](ctx, c.kv, c.key)
}

// Put replaces the cached envelope atomically.
func (c *Collection[T]) Put(ctx context.Context, env models.Envelope[T]) error {
	return SetJSON(ctx, c.kv, c.key, env)
}

// Fresh reports whether the envelope is still within its staleness
// duration at the given instant.
func (c *Collection[T]) Fresh(env models.Envelope[T], now time.Time) bool {
	return !env.StaleAfter(c.ttl, now)
}
