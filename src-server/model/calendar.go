package model

import (
	"time"

	"nostrcal/src-server/nostr"
)

// Read view over a calendar event (kind 31924): a named collection of
// calendar event addresses (repeatable a tags).
type Calendar struct {
	event *nostr.Event

	identifier string
	title      string
	eventRefs  []nostr.Address
}

// Create a read view from an envelope. Malformed a tags are skipped.
func NewCalendar(event *nostr.Event) *Calendar {
	c := &Calendar{event: event}
	c.identifier, _ = event.TagValue("d")
	c.title, _ = event.TagValue("title")
	for _, tag := range event.TagsByName("a") {
		if addr := nostr.ParseAddress(tag.Value()); addr != nil {
			c.eventRefs = append(c.eventRefs, *addr)
		}
	}
	return c
}

func (c *Calendar) Kind() int           { return nostr.KindCalendar }
func (c *Calendar) Event() *nostr.Event { return c.event }
func (c *Calendar) Address() *nostr.Address {
	return nostr.AddressOf(c.event)
}

// Get the stable identifier (d tag)
func (c *Calendar) Identifier() string {
	return c.identifier
}

// Get the display title
func (c *Calendar) Title() string {
	return c.title
}

// Get the referenced event addresses in tag order
func (c *Calendar) EventRefs() []nostr.Address {
	return c.eventRefs
}

// Get the description (envelope content)
func (c *Calendar) Description() string {
	return c.event.Content
}

// Mutable draft of a calendar
type CalendarDraft struct {
	event *nostr.Event
}

// Create a new draft with a required title
func NewCalendarDraft(pubKey, title string) *CalendarDraft {
	d := &CalendarDraft{
		event: &nostr.Event{
			Kind:      nostr.KindCalendar,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	d.SetTitle(title)
	return d
}

// Wrap an existing envelope for editing
func WrapCalendarDraft(event *nostr.Event) *CalendarDraft {
	return &CalendarDraft{event: event}
}

// Get the backing envelope to hand to the signer
func (d *CalendarDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *CalendarDraft) View() *Calendar {
	return NewCalendar(d.event)
}

// Set the stable identifier
func (d *CalendarDraft) SetIdentifier(identifier string) *CalendarDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *CalendarDraft) SetCreatedAt(createdAt int64) *CalendarDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the display title
func (d *CalendarDraft) SetTitle(title string) *CalendarDraft {
	d.event.SetTag("title", title)
	return d
}

// Append an event reference without replacing existing ones
func (d *CalendarDraft) AddEventRef(addr nostr.Address) *CalendarDraft {
	d.event.AppendTag("a", addr.String())
	return d
}

// Remove every reference to the given address
func (d *CalendarDraft) RemoveEventRef(addr nostr.Address) *CalendarDraft {
	d.event.RemoveTagsMatching("a", addr.String())
	return d
}

// Set the description (envelope content)
func (d *CalendarDraft) SetDescription(description string) *CalendarDraft {
	d.event.Content = description
	return d
}
