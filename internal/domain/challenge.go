package domain

import (
	"encoding/json/v2"
	"time"
)

// ReadingChallenge tracks progress toward a reading target.
// Completion is derived from progress and target - it is never stored, so it
// cannot drift when either field changes.
type ReadingChallenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Completed reports whether the challenge target has been reached.
func (c *ReadingChallenge) Completed() bool {
	return c.Progress >= c.Target
}

// Complete force-finishes the challenge by raising progress to the target.
// Idempotent.
func (c *ReadingChallenge) Complete() {
	c.Progress = c.Target
}

// challengeJSON is the wire shape of a challenge. It carries the derived
// is_completed field so app shells reading raw snapshots see it without
// recomputing; it is ignored on decode.
type challengeJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsCompleted bool      `json:"is_completed"`
}

// MarshalJSON emits the challenge with the derived is_completed field.
func (c ReadingChallenge) MarshalJSON() ([]byte, error) {
	return json.Marshal(challengeJSON{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Target:      c.Target,
		Progress:    c.Progress,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		IsCompleted: c.Progress >= c.Target,
	})
}

// Badge is a one-way unlockable achievement marker.
type Badge struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// Unlock marks the badge unlocked and stamps the unlock time. Unlocking an
// already-unlocked badge refreshes the timestamp; the flag never reverses.
func (b *Badge) Unlock() {
	now := time.Now()
	b.IsUnlocked = true
	b.UnlockedAt = &now
}

// Clone returns a deep copy of the badge.
func (b *Badge) Clone() *Badge {
	cp := *b
	if b.UnlockedAt != nil {
		t := *b.UnlockedAt
		cp.UnlockedAt = &t
	}
	return &cp
}

// Event is a time-bounded community happening users can join.
// The viewer-participation flag is the source of truth for the viewer's
// share of the participant counter.
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	CoverImage        string    `json:"cover_image,omitempty"`
	ParticipantsCount int       `json:"participants_count"`
	IsParticipating   bool      `json:"is_participating"`
}

// Join marks the viewer as participating and increments the counter.
// Returns false without changing anything if the viewer already joined.
func (e *Event) Join() bool {
	if e.IsParticipating {
		return false
	}
	e.IsParticipating = true
	e.ParticipantsCount++
	return true
}

// Leave clears the participation flag and decrements the counter.
// Returns false without changing anything if the viewer never joined, so an
// unmatched leave can never drive the counter negative.
func (e *Event) Leave() bool {
	if !e.IsParticipating {
		return false
	}
	e.IsParticipating = false
	if e.ParticipantsCount > 0 {
		e.ParticipantsCount--
	}
	return true
}
