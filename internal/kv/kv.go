// Package kv provides the durable key-value persistence adapter the state
// stores mirror their snapshots into. Each store serializes its entire
// visible state to one store-specific key on every mutation and rehydrates
// once at startup; there is no partial or incremental persistence.
package kv

// Well-known snapshot keys, one per state store.
const (
	KeyLibrary    = "library"
	KeySocial     = "social"
	KeyChallenges = "challenges"
	KeyTheme      = "theme"
	KeyUser       = "user"
)

// Adapter is the persistence contract: whole-value load and save by key.
// Load returns errors.ErrNotFound for an absent key. Implementations must be
// safe for concurrent use - snapshot mirroring is fire-and-forget relative to
// the in-memory mutation.
type Adapter interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}
