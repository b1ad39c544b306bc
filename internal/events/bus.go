package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single named occurrence on a target. Handlers receive a pointer
// and may stop it from travelling further along a dispatch path.
type Event struct {
	Target  any
	Name    string
	Time    time.Time
	stopped bool
}

// StopPropagation keeps the event from reaching targets later in the path.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler called StopPropagation.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Handler processes an event.
type Handler func(*Event)

// Filter decides whether a tap receives an event.
type Filter func(*Event) bool

// Record is the copy of an event delivered to taps.
type Record struct {
	Target any
	Name   string
	Time   time.Time
}

// Subscription is either a listener bound to one target and event name, or
// a channel tap that observes every dispatched event passing its filter.
type Subscription struct {
	ID      string
	Channel chan Record

	target  any
	name    string
	handler Handler
	filter  Filter
	bus     *Bus
	closed  bool
}

// Remove detaches the subscription from its bus. Calling it twice is safe.
func (s *Subscription) Remove() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Unsubscribe(s)
}

// IsClosed returns whether the subscription was removed.
func (s *Subscription) IsClosed() bool {
	if s.bus == nil {
		return true
	}
	s.bus.mu.RLock()
	defer s.bus.mu.RUnlock()
	return s.closed
}

// Metrics tracks bus activity.
type Metrics struct {
	TotalSubscriptions  int
	ActiveSubscriptions int
	EventsDispatched    int64
	EventsDelivered     int64
	EventsDropped       int64
	EventsByName        map[string]int64
	LastEventTime       time.Time
}

// Bus delivers events synchronously, in registration order, on the caller's
// goroutine. Targets are compared with ==, so they must be comparable values
// such as pointers.
type Bus struct {
	mu        sync.RWMutex
	listeners []*Subscription
	taps      []*Subscription
	metrics   Metrics
	closed    bool
	now       func() time.Time
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		metrics: Metrics{EventsByName: make(map[string]int64)},
		now:     time.Now,
	}
}

// WithClock replaces the time source stamped on events.
func (b *Bus) WithClock(now func() time.Time) *Bus {
	b.now = now
	return b
}

// Listen registers handler for name events on target.
func (b *Bus) Listen(target any, name string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	sub := &Subscription{
		ID:      uuid.NewString(),
		target:  target,
		name:    name,
		handler: handler,
		bus:     b,
	}
	b.listeners = append(b.listeners, sub)
	b.metrics.TotalSubscriptions++
	b.metrics.ActiveSubscriptions++
	return sub
}

// Tap returns a subscription whose Channel receives a Record for every
// dispatched event matching filter. A full channel drops the record.
func (b *Bus) Tap(filter Filter, bufferSize int) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	sub := &Subscription{
		ID:      uuid.NewString(),
		Channel: make(chan Record, bufferSize),
		filter:  filter,
		bus:     b,
	}
	b.taps = append(b.taps, sub)
	b.metrics.TotalSubscriptions++
	return sub
}

// Unsubscribe removes a listener or tap.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true

	if sub.Channel != nil {
		b.taps = without(b.taps, sub)
		close(sub.Channel)
		return
	}
	b.listeners = without(b.listeners, sub)
	b.metrics.ActiveSubscriptions--
}

// Trigger fires name on target alone.
func (b *Bus) Trigger(target any, name string) {
	b.Dispatch([]any{target}, name)
}

// Dispatch fires name on each target of path in turn, starting with the
// innermost. It returns false when a handler stopped propagation before the
// event left the last target.
func (b *Bus) Dispatch(path []any, name string) bool {
	b.mu.RLock()
	if b.closed || len(path) == 0 {
		b.mu.RUnlock()
		return false
	}
	ev := &Event{Target: path[0], Name: name, Time: b.now()}
	b.mu.RUnlock()

	delivered := 0
	for _, target := range path {
		for _, sub := range b.matching(target, name) {
			if sub.IsClosed() {
				continue
			}
			sub.handler(ev)
			delivered++
		}
		if ev.stopped {
			break
		}
	}

	b.publish(ev, delivered)
	return !ev.stopped
}

// Listening returns the number of live listeners on target.
func (b *Bus) Listening(target any) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, sub := range b.listeners {
		if sub.target == target {
			n++
		}
	}
	return n
}

// Metrics returns a copy of the bus counters.
func (b *Bus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()

	m := b.metrics
	m.EventsByName = make(map[string]int64, len(b.metrics.EventsByName))
	for k, v := range b.metrics.EventsByName {
		m.EventsByName[k] = v
	}
	return m
}

// Close drops every listener and closes every tap.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for _, sub := range b.listeners {
		sub.closed = true
	}
	for _, sub := range b.taps {
		sub.closed = true
		close(sub.Channel)
	}
	b.listeners = nil
	b.taps = nil
	b.metrics.ActiveSubscriptions = 0
}

// matching snapshots the listeners for one hop so handlers can add or
// remove subscriptions without the lock held.
func (b *Bus) matching(target any, name string) []*Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Subscription
	for _, sub := range b.listeners {
		if sub.target == target && sub.name == name {
			out = append(out, sub)
		}
	}
	return out
}

func (b *Bus) publish(ev *Event, delivered int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.metrics.EventsDispatched++
	b.metrics.EventsDelivered += int64(delivered)
	b.metrics.EventsByName[ev.Name]++
	b.metrics.LastEventTime = ev.Time

	rec := Record{Target: ev.Target, Name: ev.Name, Time: ev.Time}
	for _, tap := range b.taps {
		if tap.filter != nil && !tap.filter(ev) {
			continue
		}
		select {
		case tap.Channel <- rec:
		default:
			b.metrics.EventsDropped++
		}
	}
}

func without(subs []*Subscription, sub *Subscription) []*Subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s != sub {
			out = append(out, s)
		}
	}
	return out
}

// FilterByName matches events with any of the given names.
func FilterByName(names ...string) Filter {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(ev *Event) bool {
		return set[ev.Name]
	}
}

// FilterByTarget matches events fired on target.
func FilterByTarget(target any) Filter {
	return func(ev *Event) bool {
		return ev.Target == target
	}
}

// CombineFilters combines filters with AND logic.
func CombineFilters(filters ...Filter) Filter {
	return func(ev *Event) bool {
		for _, f := range filters {
			if !f(ev) {
				return false
			}
		}
		return true
	}
}
