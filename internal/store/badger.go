package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
)

// InMemory is the database path that opens a non-persistent store,
// used by tests.
const InMemory = "memory"

type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a badger database at path and returns
// it as a [KeyValue]. The badger-internal logger is silenced; budgetwatch
// logs at the call sites instead.
func NewBadgerStore(path string) (KeyValue, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
		opts.Logger = nil
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (s *badgerStore) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (s *badgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// Watch subscribes to writes under prefix via badger's pub/sub facility.
// It blocks until ctx is cancelled; the returned error is nil on normal
// cancellation.
func (s *badgerStore) Watch(ctx context.Context, prefix string, fn func(key string)) error {
	err := s.db.Subscribe(ctx, func(kvs *badger.KVList) error {
		for _, kv := range kvs.Kv {
			fn(string(kv.Key))
		}
		return nil
	}, []pb.Match{{Prefix: []byte(prefix)}})

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch %s: %w", prefix, err)
	}

	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
