package store

import (
	"log/slog"
	"sync"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// profileSnapshot is the persisted shape of the profile store.
type profileSnapshot struct {
	User *domain.User `json:"user,omitempty"`
}

// Profile owns the local user profile. Presence of a profile is what the app
// treats as being signed in; there is no authentication behind it.
type Profile struct {
	mu   sync.RWMutex
	user *domain.User

	writer   *snapshotWriter
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewProfile creates the profile store, rehydrating any previous snapshot.
func NewProfile(adapter kv.Adapter, notifier notify.Notifier, logger *slog.Logger) *Profile {
	var snap profileSnapshot
	rehydrate(adapter, kv.KeyUser, &snap, logger)

	return &Profile{
		user:     snap.User,
		writer:   newSnapshotWriter(adapter, kv.KeyUser, logger),
		notifier: notifier,
		logger:   logger,
	}
}

func (p *Profile) persistLocked(op string) {
	entityID := ""
	if p.user != nil {
		entityID = p.user.ID
	}
	p.writer.write(marshalSnapshot(profileSnapshot{User: p.user}))
	p.notifier.Publish(notify.Change{Store: kv.KeyUser, Op: op, EntityID: entityID})
}

// SetUser replaces the local profile wholesale.
func (p *Profile) SetUser(user domain.User) error {
	if user.ID == "" {
		return errors.Validation("user id is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.user = user.Clone()
	p.persistLocked("set_user")
	return nil
}

// ClearUser removes the local profile.
func (p *Profile) ClearUser() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return
	}
	entityID := p.user.ID
	p.user = nil
	p.writer.write(marshalSnapshot(profileSnapshot{}))
	p.notifier.Publish(notify.Change{Store: kv.KeyUser, Op: "clear_user", EntityID: entityID})
}

// UpdateProfile merges the non-nil patch fields into the profile.
// Returns ErrNotFound when no profile is set.
func (p *Profile) UpdateProfile(patch domain.UserPatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return errors.NotFound("no user profile set")
	}

	patch.Apply(p.user)
	p.persistLocked("update_profile")
	return nil
}

// User returns the current profile, or ErrNotFound when none is set.
func (p *Profile) User() (*domain.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.user == nil {
		return nil, errors.NotFound("no user profile set")
	}
	return p.user.Clone(), nil
}

// HasUser reports whether a profile is set.
func (p *Profile) HasUser() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user != nil
}

// Flush blocks until pending snapshot writes have landed.
func (p *Profile) Flush() {
	p.writer.flush()
}
