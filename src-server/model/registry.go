package model

import (
	"nostrcal/src-server/nostr"
)

// A typed read view over an event envelope
type View interface {
	Kind() int
	Event() *nostr.Event
}

// A mutable draft over an event envelope. Concrete draft types carry
// their kind-specific chaining setters.
type Draft interface {
	Unsigned() *nostr.Event
}

// Maps event kinds to view and draft constructors. Built explicitly at
// startup and handed to the store; there is no process-wide table, so
// tests can register a subset in isolation.
type Registry struct {
	ctors      map[int]func(*nostr.Event) View
	draftCtors map[int]func(*nostr.Event) Draft
}

func NewRegistry() *Registry {
	return &Registry{
		ctors:      make(map[int]func(*nostr.Event) View),
		draftCtors: make(map[int]func(*nostr.Event) Draft),
	}
}

// Create a registry with every calendar kind registered
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(nostr.KindDateEvent, func(ev *nostr.Event) View { return NewDateEvent(ev) })
	r.Register(nostr.KindTimeEvent, func(ev *nostr.Event) View { return NewTimeEvent(ev) })
	r.Register(nostr.KindCalendar, func(ev *nostr.Event) View { return NewCalendar(ev) })
	r.Register(nostr.KindRSVP, func(ev *nostr.Event) View { return NewRSVP(ev) })
	r.Register(nostr.KindAvailability, func(ev *nostr.Event) View { return NewAvailability(ev) })
	r.Register(nostr.KindBusyBlock, func(ev *nostr.Event) View { return NewBusyBlock(ev) })
	r.RegisterDraft(nostr.KindDateEvent, func(ev *nostr.Event) Draft { return WrapDateEventDraft(ev) })
	r.RegisterDraft(nostr.KindTimeEvent, func(ev *nostr.Event) Draft { return WrapTimeEventDraft(ev) })
	r.RegisterDraft(nostr.KindCalendar, func(ev *nostr.Event) Draft { return WrapCalendarDraft(ev) })
	r.RegisterDraft(nostr.KindRSVP, func(ev *nostr.Event) Draft { return WrapRSVPDraft(ev) })
	r.RegisterDraft(nostr.KindAvailability, func(ev *nostr.Event) Draft { return WrapAvailabilityDraft(ev) })
	r.RegisterDraft(nostr.KindBusyBlock, func(ev *nostr.Event) Draft { return WrapBusyBlockDraft(ev) })
	return r
}

// Register a view constructor for a kind
func (r *Registry) Register(kind int, ctor func(*nostr.Event) View) {
	r.ctors[kind] = ctor
}

// Register a draft constructor for a kind
func (r *Registry) RegisterDraft(kind int, ctor func(*nostr.Event) Draft) {
	r.draftCtors[kind] = ctor
}

// Decode an envelope into its typed view. The second return is false
// for unregistered kinds.
func (r *Registry) Decode(event *nostr.Event) (View, bool) {
	if event == nil {
		return nil, false
	}
	ctor, ok := r.ctors[event.Kind]
	if !ok {
		return nil, false
	}
	return ctor(event), true
}

// Wrap an envelope in its kind's mutable draft for editing. The second
// return is false for unregistered kinds.
func (r *Registry) Wrap(event *nostr.Event) (Draft, bool) {
	if event == nil {
		return nil, false
	}
	ctor, ok := r.draftCtors[event.Kind]
	if !ok {
		return nil, false
	}
	return ctor(event), true
}

// Whether the kind has a registered view constructor
func (r *Registry) Knows(kind int) bool {
	_, ok := r.ctors[kind]
	return ok
}
