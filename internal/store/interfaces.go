// SPDX-License-Identifier: Apache-2.0

// Package store provides the durable key-value collaborator and the typed
// resource-envelope cache built on top of it.
//
// The KeyValue interface is implemented by a badger-backed store
// ([NewBadgerStore]); the cache layer ([Collection]) adds JSON-encoded
// [models.Envelope] values with per-kind staleness durations. Envelope
// writes are atomic: readers always see either the previous or the next
// complete envelope, never a partial merge.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValue is the durable key-value collaborator. Values are opaque byte
// slices; every write replaces the whole value atomically.
type KeyValue interface {
	// Get returns the value stored under key, or [ErrNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Watch invokes fn with the key of every subsequent write under the
	// given prefix, until ctx is cancelled. It blocks for the duration of
	// the subscription; callers run it in its own goroutine.
	Watch(ctx context.Context, prefix string, fn func(key string)) error

	// Close releases the underlying database.
	Close() error
}
