package model

import (
	"time"

	"nostrcal/src-server/nostr"
)

// Layout of the start/end tags on date-based events
const DateLayout = "2006-01-02"

// Read view over a date-based calendar event (kind 31922): an all-day
// or multi-day event whose start/end tags are calendar dates, start
// inclusive and end exclusive.
type DateEvent struct {
	event *nostr.Event

	identifier string
	title      string
	startDate  string
	endDate    string
	location   string
}

// Create a read view from an envelope
func NewDateEvent(event *nostr.Event) *DateEvent {
	e := &DateEvent{event: event}
	e.identifier, _ = event.TagValue("d")
	e.title, _ = event.TagValue("title")
	e.startDate, _ = event.TagValue("start")
	e.endDate, _ = event.TagValue("end")
	e.location, _ = event.TagValue("location")
	return e
}

func (e *DateEvent) Kind() int           { return nostr.KindDateEvent }
func (e *DateEvent) Event() *nostr.Event { return e.event }
func (e *DateEvent) Address() *nostr.Address {
	return nostr.AddressOf(e.event)
}

// Get the stable identifier (d tag)
func (e *DateEvent) Identifier() string {
	return e.identifier
}

// Get the display title
func (e *DateEvent) Title() string {
	return e.title
}

// Get the raw start date string ("YYYY-MM-DD")
func (e *DateEvent) StartDate() string {
	return e.startDate
}

// Get the raw end date string, empty when absent
func (e *DateEvent) EndDate() string {
	return e.endDate
}

// Get the location, empty when absent
func (e *DateEvent) Location() string {
	return e.location
}

// Get the description (envelope content)
func (e *DateEvent) Description() string {
	return e.event.Content
}

// Get the start date at local midnight, nil when absent or unparsable
func (e *DateEvent) StartDateTime() *time.Time {
	return parseLocalDate(e.startDate)
}

// Get the exclusive end instant: the end date at local midnight, or
// start + 1 day when no end is set. Nil when the start is unparsable.
func (e *DateEvent) EndDateTime() *time.Time {
	if end := parseLocalDate(e.endDate); end != nil {
		return end
	}
	start := e.StartDateTime()
	if start == nil {
		return nil
	}
	end := start.AddDate(0, 0, 1)
	return &end
}

func parseLocalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return nil
	}
	return &parsed
}

// Mutable draft of a date-based calendar event
type DateEventDraft struct {
	event *nostr.Event
}

// Create a new draft with a required title and start date
func NewDateEventDraft(pubKey, title string, start time.Time) *DateEventDraft {
	d := &DateEventDraft{
		event: &nostr.Event{
			Kind:      nostr.KindDateEvent,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	d.SetTitle(title)
	d.SetStartDate(start)
	return d
}

// Wrap an existing envelope for editing
func WrapDateEventDraft(event *nostr.Event) *DateEventDraft {
	return &DateEventDraft{event: event}
}

// Get the backing envelope to hand to the signer
func (d *DateEventDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *DateEventDraft) View() *DateEvent {
	return NewDateEvent(d.event)
}

// Set the stable identifier
func (d *DateEventDraft) SetIdentifier(identifier string) *DateEventDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *DateEventDraft) SetCreatedAt(createdAt int64) *DateEventDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the display title
func (d *DateEventDraft) SetTitle(title string) *DateEventDraft {
	d.event.SetTag("title", title)
	return d
}

// Set the inclusive start date
func (d *DateEventDraft) SetStartDate(start time.Time) *DateEventDraft {
	d.event.SetTag("start", start.Format(DateLayout))
	return d
}

// Set the exclusive end date; the zero time removes the tag
func (d *DateEventDraft) SetEndDate(end time.Time) *DateEventDraft {
	if end.IsZero() {
		d.event.RemoveTags("end")
		return d
	}
	d.event.SetTag("end", end.Format(DateLayout))
	return d
}

// Set the location; empty removes the tag
func (d *DateEventDraft) SetLocation(location string) *DateEventDraft {
	d.event.SetTag("location", location)
	return d
}

// Set the description (envelope content)
func (d *DateEventDraft) SetDescription(description string) *DateEventDraft {
	d.event.Content = description
	return d
}
