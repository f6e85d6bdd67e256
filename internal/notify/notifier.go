// Package notify broadcasts engine state changes to in-process observers.
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/fitforge/fitforge/types"
)

// DefaultBuffer is the channel size used when Subscribe is given a
// non-positive buffer.
const DefaultBuffer = 16

// Notifier fans events out to subscribers.
//
// The version counter is bumped by Next, which the engine calls while it
// still holds its lock, so versions follow mutation order. Delivery happens
// later through Publish, outside the lock.
type Notifier struct {
	version atomic.Uint64

	subscribers      *xsync.Map[uint64, *subscriber]
	nextSubscriberID atomic.Uint64

	logger  types.Logger
	metrics types.NotifierMetrics
}

// New creates a notifier.
//
// Parameters:
//   - logger: Logger for callback panics
//   - metrics: Collector for dropped events and subscriber counts
//
// Returns:
//   - *Notifier: Notifier with no subscribers at version 0
func New(logger types.Logger, metrics types.NotifierMetrics) *Notifier {
	return &Notifier{
		subscribers: xsync.NewMap[uint64, *subscriber](),
		logger:      logger,
		metrics:     metrics,
	}
}

// Version returns the number of events created so far.
//
// Observers that do not subscribe can poll this and refresh when it moves.
func (n *Notifier) Version() uint64 {
	return n.version.Load()
}

// Len returns the number of live subscriptions.
func (n *Notifier) Len() int {
	return n.subscribers.Size()
}

// Next stamps a new event with the next version.
func (n *Notifier) Next(kind types.EventKind, team, project, sequence int) types.Event {
	return types.Event{
		Kind:     kind,
		Version:  n.version.Add(1),
		Team:     team,
		Project:  project,
		Sequence: sequence,
	}
}

// Publish delivers ev to every subscriber.
//
// Callbacks run synchronously on the caller's goroutine in no particular
// order. Channel subscribers receive the event without blocking; a full
// buffer drops it.
func (n *Notifier) Publish(ev types.Event) {
	n.subscribers.Range(func(_ uint64, sub *subscriber) bool {
		if !sub.deliver(ev, n.logger) {
			n.metrics.RecordEventDropped(ev.Kind)
		}

		return true
	})
}

// Subscribe registers a buffered channel subscriber.
//
// Parameters:
//   - buffer: Channel capacity (DefaultBuffer when ≤ 0)
//
// Returns:
//   - *Subscription: Handle whose C() yields events; Close releases it
//
// Example:
//
//	sub := n.Subscribe(8)
//	defer sub.Close()
//	for ev := range sub.C() {
//	    fmt.Println(ev.Kind, ev.Version)
//	}
func (n *Notifier) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	sub := &subscriber{ch: make(chan types.Event, buffer)}

	return n.register(sub)
}

// SubscribeFunc registers a callback invoked once per event.
//
// The callback must not call back into the engine's mutating methods from
// the same goroutine if it relies on ordering with other observers.
func (n *Notifier) SubscribeFunc(fn func(types.Event)) *Subscription {
	return n.register(&subscriber{fn: fn})
}

func (n *Notifier) register(sub *subscriber) *Subscription {
	id := n.nextSubscriberID.Add(1)
	n.subscribers.Store(id, sub)
	n.metrics.RecordSubscriberCount(n.subscribers.Size())

	return &Subscription{id: id, notifier: n, ch: sub.ch}
}

func (n *Notifier) remove(id uint64) {
	if sub, ok := n.subscribers.LoadAndDelete(id); ok {
		sub.close()
		n.metrics.RecordSubscriberCount(n.subscribers.Size())
	}
}

// Subscription is a scoped registration. Close deregisters it and is safe
// to call more than once.
type Subscription struct {
	id       uint64
	notifier *Notifier
	ch       chan types.Event
	once     sync.Once
}

// C returns the event channel, or nil for callback subscriptions.
// The channel is closed by Close.
func (s *Subscription) C() <-chan types.Event {
	return s.ch
}

// Close deregisters the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}

// subscriber is one registered observer.
type subscriber struct {
	ch     chan types.Event
	fn     func(types.Event)
	mu     sync.Mutex
	closed bool
}

// deliver sends ev and reports whether it was delivered.
func (s *subscriber) deliver(ev types.Event, logger types.Logger) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return true
	}
	if s.fn == nil {
		defer s.mu.Unlock()
		select {
		case s.ch <- ev:
			return true
		default:
			return false
		}
	}
	fn := s.fn
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("event callback panicked", "kind", ev.Kind.String(), "panic", r)
		}
	}()
	fn(ev)

	return true
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.ch != nil {
		close(s.ch)
	}
}
