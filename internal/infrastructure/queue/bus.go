package queue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SystemEvent is one event on the internal queue consumed by the agent
// runtime. SessionKey selects the agent session; ContextKey lets the consumer
// correlate or deduplicate related events.
type SystemEvent struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SessionKey string    `json:"session_key"`
	ContextKey string    `json:"context_key,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// subscriber is a named tap on the event stream.
type subscriber struct {
	name string
	ch   chan SystemEvent
}

// Bus is an in-process fan-out queue. Enqueue never blocks: events are copied
// to every subscriber's buffered channel, and slow subscribers drop.
type Bus struct {
	mu      sync.RWMutex
	subs    []*subscriber
	closed  bool
	buffer  int
	dropped atomic.Int64
}

// NewBus creates a bus whose subscriber channels hold buffer events each.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{buffer: buffer}
}

// Enqueue publishes one system event. Fire-and-forget: implements the
// interaction use case's Enqueuer port.
func (b *Bus) Enqueue(text, sessionKey, contextKey string) {
	event := SystemEvent{
		ID:         uuid.New().String(),
		Text:       text,
		SessionKey: sessionKey,
		ContextKey: contextKey,
		EnqueuedAt: time.Now().UTC(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe creates a named tap receiving every subsequently enqueued event.
func (b *Bus) Subscribe(name string) <-chan SystemEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscriber{name: name, ch: make(chan SystemEvent, b.buffer)}
	b.subs = append(b.subs, sub)
	return sub.ch
}

// Dropped returns how many events were discarded because a subscriber's
// buffer was full.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close stops the bus and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
}
