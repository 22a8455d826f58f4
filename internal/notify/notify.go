// Package notify broadcasts store snapshot changes to subscribed screens.
// This is a plain in-process publish/subscribe bus - every mutation publishes
// one Change and subscribers re-read the store snapshot when they receive it.
package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Change describes one store mutation.
type Change struct {
	Store    string    `json:"store"`     // snapshot key of the mutated store
	Op       string    `json:"op"`        // action name, e.g. "toggle_like"
	EntityID string    `json:"entity_id"` // id of the mutated entity, if any
	At       time.Time `json:"at"`
}

// Notifier is the interface stores publish changes through.
type Notifier interface {
	Publish(change Change)
}

// Noop is a no-op Notifier for tests.
type Noop struct{}

// Publish implements Notifier.Publish as a no-op.
func (Noop) Publish(Change) {}

// NewNoop creates a new no-op notifier for testing.
func NewNoop() Notifier {
	return Noop{}
}

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing changes; it should re-read full
// snapshots rather than replaying the stream.
const subscriberBuffer = 64

// Bus is a fan-out Notifier. Sends never block a mutation: a slow subscriber
// drops changes instead of stalling the store.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Change
	nextID      int
	closed      bool
	dropped     atomic.Int64
	logger      *slog.Logger
}

// NewBus creates a new change bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[int]chan Change),
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe or bus close.
func (b *Bus) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Change)
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Change, subscriberBuffer)
	b.subscribers[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
}

// Publish fans the change out to all subscribers without blocking.
func (b *Bus) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- change:
		default:
			// Slow subscriber - drop rather than stall the mutation path.
			b.dropped.Add(1)
			if b.logger != nil {
				b.logger.Warn("dropped change for slow subscriber",
					"store", change.Store, "op", change.Op)
			}
		}
	}
}

// Dropped reports how many changes were dropped for slow subscribers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
