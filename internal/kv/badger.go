package kv

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookishapp/bookish-core/internal/errors"
)

// Options configures the badger-backed adapter.
type Options struct {
	// SyncWrites ensures writes are synced to disk to prevent corruption on
	// crashes. Disable only in tests.
	SyncWrites bool
}

// Badger is the durable Adapter implementation backed by a badger database.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) a badger database at the given path.
func Open(path string, logger *slog.Logger, opts Options) (*Badger, error) {
	badgerOpts := badger.DefaultOptions(path)
	badgerOpts.Logger = nil // Disable badger's internal logging
	badgerOpts.SyncWrites = opts.SyncWrites
	badgerOpts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("badger database opened", "path", path)
	}

	return &Badger{db: db, logger: logger}, nil
}

// Load retrieves the value stored under key.
// Returns errors.ErrNotFound if the key has never been saved.
func (b *Badger) Load(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.NotFoundf("no snapshot under key %q", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

// Save stores the value under key, replacing any previous value.
func (b *Badger) Save(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Close gracefully closes the database.
func (b *Badger) Close() error {
	if b.logger != nil {
		b.logger.Info("closing badger database")
	}
	return b.db.Close()
}
