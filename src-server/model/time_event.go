package model

import (
	"strconv"
	"time"

	"nostrcal/src-server/nostr"
)

// Read view over a time-based calendar event (kind 31923): start and
// end tags are unix-second instants; a missing end means the event is
// instantaneous.
type TimeEvent struct {
	event *nostr.Event

	identifier string
	title      string
	start      *time.Time
	end        *time.Time
	location   string
	timeZone   string
}

// Create a read view from an envelope
func NewTimeEvent(event *nostr.Event) *TimeEvent {
	e := &TimeEvent{event: event}
	e.identifier, _ = event.TagValue("d")
	e.title, _ = event.TagValue("title")
	e.start = parseUnixTag(event, "start")
	e.end = parseUnixTag(event, "end")
	e.location, _ = event.TagValue("location")
	e.timeZone, _ = event.TagValue("tzid")
	return e
}

func parseUnixTag(event *nostr.Event, name string) *time.Time {
	raw, ok := event.TagValue(name)
	if !ok {
		return nil
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	parsed := time.Unix(unix, 0)
	return &parsed
}

func (e *TimeEvent) Kind() int           { return nostr.KindTimeEvent }
func (e *TimeEvent) Event() *nostr.Event { return e.event }
func (e *TimeEvent) Address() *nostr.Address {
	return nostr.AddressOf(e.event)
}

// Get the stable identifier (d tag)
func (e *TimeEvent) Identifier() string {
	return e.identifier
}

// Get the display title
func (e *TimeEvent) Title() string {
	return e.title
}

// Get the start instant, nil when absent or unparsable
func (e *TimeEvent) StartDateTime() *time.Time {
	return e.start
}

// Get the exclusive end instant. A missing end falls back to the start
// (instantaneous event); nil when the start is also unparsable.
func (e *TimeEvent) EndDateTime() *time.Time {
	if e.end != nil {
		return e.end
	}
	return e.start
}

// Get the location, empty when absent
func (e *TimeEvent) Location() string {
	return e.location
}

// Get the IANA time zone name, empty when unset
func (e *TimeEvent) TimeZone() string {
	return e.timeZone
}

// Get the description (envelope content)
func (e *TimeEvent) Description() string {
	return e.event.Content
}

// Mutable draft of a time-based calendar event
type TimeEventDraft struct {
	event *nostr.Event
}

// Create a new draft with a required title and start instant
func NewTimeEventDraft(pubKey, title string, start time.Time) *TimeEventDraft {
	d := &TimeEventDraft{
		event: &nostr.Event{
			Kind:      nostr.KindTimeEvent,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	d.SetTitle(title)
	d.SetStart(start)
	return d
}

// Wrap an existing envelope for editing
func WrapTimeEventDraft(event *nostr.Event) *TimeEventDraft {
	return &TimeEventDraft{event: event}
}

// Get the backing envelope to hand to the signer
func (d *TimeEventDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *TimeEventDraft) View() *TimeEvent {
	return NewTimeEvent(d.event)
}

// Set the stable identifier
func (d *TimeEventDraft) SetIdentifier(identifier string) *TimeEventDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *TimeEventDraft) SetCreatedAt(createdAt int64) *TimeEventDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the display title
func (d *TimeEventDraft) SetTitle(title string) *TimeEventDraft {
	d.event.SetTag("title", title)
	return d
}

// Set the start instant, truncated to whole seconds
func (d *TimeEventDraft) SetStart(start time.Time) *TimeEventDraft {
	d.event.SetTag("start", strconv.FormatInt(start.Unix(), 10))
	return d
}

// Set the exclusive end instant; the zero time removes the tag
func (d *TimeEventDraft) SetEnd(end time.Time) *TimeEventDraft {
	if end.IsZero() {
		d.event.RemoveTags("end")
		return d
	}
	d.event.SetTag("end", strconv.FormatInt(end.Unix(), 10))
	return d
}

// Set the location; empty removes the tag
func (d *TimeEventDraft) SetLocation(location string) *TimeEventDraft {
	d.event.SetTag("location", location)
	return d
}

// Set the IANA time zone name; empty removes the tag
func (d *TimeEventDraft) SetTimeZone(tzid string) *TimeEventDraft {
	d.event.SetTag("tzid", tzid)
	return d
}

// Set the description (envelope content)
func (d *TimeEventDraft) SetDescription(description string) *TimeEventDraft {
	d.event.Content = description
	return d
}
