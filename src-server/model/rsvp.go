package model

import (
	"time"

	"nostrcal/src-server/nostr"
)

// RSVP status values stored in the status tag
const (
	RSVPAccepted  = "accepted"
	RSVPDeclined  = "declined"
	RSVPTentative = "tentative"
)

// Read view over an RSVP event (kind 31925): a response to a calendar
// event identified by its replaceable address. An absent or malformed
// address is a valid but degraded state; the RSVP still surfaces.
type RSVP struct {
	event *nostr.Event

	identifier   string
	eventAddress *nostr.Address
	status       string
}

// Create a read view from an envelope
func NewRSVP(event *nostr.Event) *RSVP {
	r := &RSVP{event: event}
	r.identifier, _ = event.TagValue("d")
	if raw, ok := event.TagValue("a"); ok {
		r.eventAddress = nostr.ParseAddress(raw)
	}
	r.status, _ = event.TagValue("status")
	return r
}

func (r *RSVP) Kind() int           { return nostr.KindRSVP }
func (r *RSVP) Event() *nostr.Event { return r.event }
func (r *RSVP) Address() *nostr.Address {
	return nostr.AddressOf(r.event)
}

// Get the stable identifier (d tag)
func (r *RSVP) Identifier() string {
	return r.identifier
}

// Get the address of the event being responded to, nil when absent or
// malformed
func (r *RSVP) EventAddress() *nostr.Address {
	return r.eventAddress
}

// Get the raw status tag value
func (r *RSVP) Status() string {
	return r.status
}

// Whether the author accepted
func (r *RSVP) IsAccepted() bool {
	return r.status == RSVPAccepted
}

// Whether the author declined
func (r *RSVP) IsDeclined() bool {
	return r.status == RSVPDeclined
}

// Whether the author is tentative
func (r *RSVP) IsTentative() bool {
	return r.status == RSVPTentative
}

// Get the free-text note (envelope content)
func (r *RSVP) Note() string {
	return r.event.Content
}

// Mutable draft of an RSVP
type RSVPDraft struct {
	event *nostr.Event
}

// Create a new draft responding to the given event address
func NewRSVPDraft(pubKey string, target nostr.Address, status string) *RSVPDraft {
	d := &RSVPDraft{
		event: &nostr.Event{
			Kind:      nostr.KindRSVP,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	d.SetEventAddress(target)
	d.SetStatus(status)
	return d
}

// Wrap an existing envelope for editing
func WrapRSVPDraft(event *nostr.Event) *RSVPDraft {
	return &RSVPDraft{event: event}
}

// Get the backing envelope to hand to the signer
func (d *RSVPDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *RSVPDraft) View() *RSVP {
	return NewRSVP(d.event)
}

// Set the stable identifier
func (d *RSVPDraft) SetIdentifier(identifier string) *RSVPDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *RSVPDraft) SetCreatedAt(createdAt int64) *RSVPDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the address of the event being responded to
func (d *RSVPDraft) SetEventAddress(target nostr.Address) *RSVPDraft {
	d.event.SetTag("a", target.String())
	return d
}

// Set the response status (accepted, declined or tentative)
func (d *RSVPDraft) SetStatus(status string) *RSVPDraft {
	d.event.SetTag("status", status)
	return d
}

// Set the free-text note (envelope content)
func (d *RSVPDraft) SetNote(note string) *RSVPDraft {
	d.event.Content = note
	return d
}
