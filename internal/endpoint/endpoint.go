package endpoint

import (
	"sync"
	"sync/atomic"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

type registration[E ~string] struct {
	owner   Owner
	event   E
	fn      Listener
	removed atomic.Bool
}

// Endpoint dispatches named events to registered listeners.
// The zero value is not usable; create one with New.
type Endpoint[E ~string] struct {
	mu        sync.Mutex
	listeners map[E][]*registration[E]
	owners    map[Owner][]*registration[E]
}

// New creates an empty endpoint.
func New[E ~string]() *Endpoint[E] {
	return &Endpoint[E]{
		listeners: make(map[E][]*registration[E]),
		owners:    make(map[Owner][]*registration[E]),
	}
}

// AddListener registers fn for event under owner. Registrations are kept in
// order; the same owner may register any number of listeners per event.
// A nil fn is ignored.
func (e *Endpoint[E]) AddListener(owner Owner, event E, fn Listener) {
	if fn == nil {
		return
	}
	reg := &registration[E]{owner: owner, event: event, fn: fn}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners[event] = append(e.listeners[event], reg)
	e.owners[owner] = append(e.owners[owner], reg)
}

// Emit invokes the listeners registered for event, in registration order,
// with args. Emitting an event nobody listens to does nothing.
func (e *Endpoint[E]) Emit(event E, args ...any) {
	e.mu.Lock()
	regs := e.listeners[event]
	snapshot := make([]*registration[E], len(regs))
	copy(snapshot, regs)
	e.mu.Unlock()

	for _, reg := range snapshot {
		if reg.removed.Load() {
			continue
		}
		reg.fn(args...)
	}
}

// Release removes every listener registered by owner. Releasing an owner
// with no listeners, or releasing twice, does nothing.
func (e *Endpoint[E]) Release(owner Owner) {
	e.mu.Lock()
	defer e.mu.Unlock()

	regs, ok := e.owners[owner]
	if !ok {
		return
	}
	delete(e.owners, owner)

	touched := make(map[E]struct{})
	for _, reg := range regs {
		reg.removed.Store(true)
		touched[reg.event] = struct{}{}
	}
	for event := range touched {
		e.compact(event)
	}
}

// compact drops removed registrations for event. A fresh slice is built so
// snapshots taken by in-flight emissions stay intact.
func (e *Endpoint[E]) compact(event E) {
	regs := e.listeners[event]
	kept := make([]*registration[E], 0, len(regs))
	for _, reg := range regs {
		if !reg.removed.Load() {
			kept = append(kept, reg)
		}
	}
	if len(kept) == 0 {
		delete(e.listeners, event)
		return
	}
	e.listeners[event] = kept
}

// RemoveAllListeners clears every registration.
func (e *Endpoint[E]) RemoveAllListeners() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, regs := range e.listeners {
		for _, reg := range regs {
			reg.removed.Store(true)
		}
	}
	e.listeners = make(map[E][]*registration[E])
	e.owners = make(map[Owner][]*registration[E])
}

// ListenerCount returns the number of listeners registered for event.
func (e *Endpoint[E]) ListenerCount(event E) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners[event])
}

// OwnerCount returns the number of owners holding at least one listener.
func (e *Endpoint[E]) OwnerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.owners)
}
