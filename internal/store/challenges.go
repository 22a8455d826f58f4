package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// challengesSnapshot is the persisted shape of the challenges store.
type challengesSnapshot struct {
	Challenges []domain.ReadingChallenge `json:"challenges"`
	Badges     []domain.Badge            `json:"badges"`
	Events     []domain.Event            `json:"events"`
}

// Challenges owns reading challenges, badges and community events.
type Challenges struct {
	mu         sync.RWMutex
	challenges []domain.ReadingChallenge
	badges     []domain.Badge
	events     []domain.Event

	writer   *snapshotWriter
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewChallenges creates the challenges store, rehydrating any previous
// snapshot.
func NewChallenges(adapter kv.Adapter, notifier notify.Notifier, logger *slog.Logger) *Challenges {
	var snap challengesSnapshot
	rehydrate(adapter, kv.KeyChallenges, &snap, logger)

	return &Challenges{
		challenges: snap.Challenges,
		badges:     snap.Badges,
		events:     snap.Events,
		writer:     newSnapshotWriter(adapter, kv.KeyChallenges, logger),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *Challenges) persistLocked(op, entityID string) {
	c.writer.write(marshalSnapshot(challengesSnapshot{
		Challenges: c.challenges,
		Badges:     c.badges,
		Events:     c.events,
	}))
	c.notifier.Publish(notify.Change{Store: kv.KeyChallenges, Op: op, EntityID: entityID})
}

func (c *Challenges) findChallengeLocked(challengeID string) *domain.ReadingChallenge {
	for i := range c.challenges {
		if c.challenges[i].ID == challengeID {
			return &c.challenges[i]
		}
	}
	return nil
}

func (c *Challenges) findBadgeLocked(badgeID string) *domain.Badge {
	for i := range c.badges {
		if c.badges[i].ID == badgeID {
			return &c.badges[i]
		}
	}
	return nil
}

func (c *Challenges) findEventLocked(eventID string) *domain.Event {
	for i := range c.events {
		if c.events[i].ID == eventID {
			return &c.events[i]
		}
	}
	return nil
}

// AddChallenge appends a challenge. The target must be positive.
func (c *Challenges) AddChallenge(challenge domain.ReadingChallenge) error {
	if challenge.Target <= 0 {
		return errors.Validationf("challenge target must be > 0, got %d", challenge.Target)
	}
	if challenge.Progress < 0 {
		return errors.Validationf("challenge progress must be >= 0, got %d", challenge.Progress)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.findChallengeLocked(challenge.ID) != nil {
		return errors.AlreadyExistsf("challenge %s already exists", challenge.ID)
	}

	c.challenges = append(c.challenges, challenge)
	c.persistLocked("add_challenge", challenge.ID)
	return nil
}

// UpdateChallengeProgress sets the progress count. Completion is derived, so
// progress may move in either direction and the completed state follows it.
func (c *Challenges) UpdateChallengeProgress(challengeID string, progress int) error {
	if progress < 0 {
		return errors.Validationf("challenge progress must be >= 0, got %d", progress)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	challenge := c.findChallengeLocked(challengeID)
	if challenge == nil {
		return errors.NotFoundf("challenge %s not found", challengeID)
	}

	challenge.Progress = progress
	c.persistLocked("update_challenge_progress", challengeID)
	return nil
}

// CompleteChallenge force-finishes a challenge by raising its progress to the
// target. Idempotent.
func (c *Challenges) CompleteChallenge(challengeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	challenge := c.findChallengeLocked(challengeID)
	if challenge == nil {
		return errors.NotFoundf("challenge %s not found", challengeID)
	}

	challenge.Complete()
	c.persistLocked("complete_challenge", challengeID)
	return nil
}

// UnlockBadge unlocks a badge. Re-unlocking refreshes the unlock timestamp;
// the flag itself never reverses.
func (c *Challenges) UnlockBadge(badgeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	badge := c.findBadgeLocked(badgeID)
	if badge == nil {
		return errors.NotFoundf("badge %s not found", badgeID)
	}

	badge.Unlock()
	c.persistLocked("unlock_badge", badgeID)
	return nil
}

// JoinEvent marks the viewer as participating in the event.
// Joining an event already joined returns ErrConflict.
func (c *Challenges) JoinEvent(eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	event := c.findEventLocked(eventID)
	if event == nil {
		return errors.NotFoundf("event %s not found", eventID)
	}
	if !event.Join() {
		return errors.Conflictf("already participating in event %s", eventID)
	}

	c.persistLocked("join_event", eventID)
	return nil
}

// LeaveEvent withdraws the viewer from the event.
// Leaving an event not joined returns ErrConflict.
func (c *Challenges) LeaveEvent(eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	event := c.findEventLocked(eventID)
	if event == nil {
		return errors.NotFoundf("event %s not found", eventID)
	}
	if !event.Leave() {
		return errors.Conflictf("not participating in event %s", eventID)
	}

	c.persistLocked("leave_event", eventID)
	return nil
}

// Bootstrap populates the store from seed fixtures if it is empty.
func (c *Challenges) Bootstrap(challenges []domain.ReadingChallenge, badges []domain.Badge, events []domain.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.challenges) > 0 || len(c.badges) > 0 || len(c.events) > 0 {
		return false
	}

	c.challenges = slices.Clone(challenges)
	c.badges = make([]domain.Badge, 0, len(badges))
	for i := range badges {
		c.badges = append(c.badges, *badges[i].Clone())
	}
	c.events = slices.Clone(events)

	c.persistLocked("bootstrap", "")
	return true
}

// Challenges returns all reading challenges in insertion order.
func (c *Challenges) Challenges() []domain.ReadingChallenge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.challenges)
}

// Challenge returns one challenge by id.
func (c *Challenges) Challenge(challengeID string) (*domain.ReadingChallenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	challenge := c.findChallengeLocked(challengeID)
	if challenge == nil {
		return nil, errors.NotFoundf("challenge %s not found", challengeID)
	}
	cp := *challenge
	return &cp, nil
}

// Badges returns all badges in insertion order.
func (c *Challenges) Badges() []domain.Badge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Badge, 0, len(c.badges))
	for i := range c.badges {
		out = append(out, *c.badges[i].Clone())
	}
	return out
}

// UnlockedBadges returns only the badges the user has unlocked.
func (c *Challenges) UnlockedBadges() []domain.Badge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Badge
	for i := range c.badges {
		if c.badges[i].IsUnlocked {
			out = append(out, *c.badges[i].Clone())
		}
	}
	return out
}

// Events returns all events in insertion order.
func (c *Challenges) Events() []domain.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.events)
}

// Event returns one event by id.
func (c *Challenges) Event(eventID string) (*domain.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	event := c.findEventLocked(eventID)
	if event == nil {
		return nil, errors.NotFoundf("event %s not found", eventID)
	}
	cp := *event
	return &cp, nil
}

// Flush blocks until pending snapshot writes have landed.
func (c *Challenges) Flush() {
	c.writer.flush()
}
