// Package store holds the engine's state containers. Each store owns one
// entity collection set, applies mutations synchronously in memory, and
// mirrors its full JSON snapshot to the persistence adapter under a single
// store-specific key after every mutation. The in-memory state is the source
// of truth for the session; persistence is fire-and-forget.
//
// Stores are independent - no store reaches into another's state. Screens
// compose data by joining across store snapshots at read time (see the
// service package).
package store

import (
	"encoding/json/v2"
	"log/slog"
	"sync"

	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
)

// rehydrate loads and decodes a store snapshot. An absent key (first run) or
// an undecodable payload leaves dest untouched so the store starts from its
// empty state; corruption is logged, never fatal. Decoding goes through a
// temporary so a payload that fails partway through never leaves dest holding
// the fields that decoded before the error.
func rehydrate[T any](adapter kv.Adapter, key string, dest *T, logger *slog.Logger) {
	data, err := adapter.Load(key)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) && logger != nil {
			logger.Warn("failed to load snapshot, starting empty", "key", key, "error", err)
		}
		return
	}

	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		if logger != nil {
			logger.Warn("corrupt snapshot, starting empty", "key", key, "error", err)
		}
		return
	}
	*dest = decoded
}

// snapshotWriter mirrors snapshots to the adapter asynchronously so a
// mutation never waits on disk. Writes carry a sequence number; a write that
// lands after a newer one is skipped, so the adapter always ends up holding
// the latest snapshot.
type snapshotWriter struct {
	adapter kv.Adapter
	key     string
	logger  *slog.Logger

	mu      sync.Mutex
	seq     uint64
	written uint64
	wg      sync.WaitGroup
}

func newSnapshotWriter(adapter kv.Adapter, key string, logger *slog.Logger) *snapshotWriter {
	return &snapshotWriter{adapter: adapter, key: key, logger: logger}
}

// write schedules data to be saved. Returns immediately.
func (w *snapshotWriter) write(data []byte) {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.mu.Lock()
		defer w.mu.Unlock()
		if seq <= w.written {
			return // a newer snapshot already landed
		}
		if err := w.adapter.Save(w.key, data); err != nil {
			if w.logger != nil {
				w.logger.Error("failed to persist snapshot", "key", w.key, "error", err)
			}
			return
		}
		w.written = seq
	}()
}

// flush blocks until all scheduled writes have landed.
func (w *snapshotWriter) flush() {
	w.wg.Wait()
}

// marshalSnapshot encodes a snapshot, panicking on failure. Snapshot types
// are plain data structs; a marshal failure is a programming error.
func marshalSnapshot(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic("store: marshal snapshot: " + err.Error())
	}
	return data
}
