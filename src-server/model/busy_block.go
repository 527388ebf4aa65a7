package model

import (
	"strconv"
	"time"

	"nostrcal/src-server/nostr"
)

// Read view over a busy block event (kind 31927): one concrete
// unavailable interval, inclusive start and exclusive end, carrying no
// event content beyond an optional description.
type BusyBlock struct {
	event *nostr.Event

	identifier string
	startTime  time.Time
	endTime    time.Time
}

// Create a read view from an envelope. Unparsable timestamps degrade
// to the zero time.
func NewBusyBlock(event *nostr.Event) *BusyBlock {
	b := &BusyBlock{event: event}
	b.identifier, _ = event.TagValue("d")
	if raw, ok := event.TagValue("start"); ok {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			b.startTime = time.Unix(unix, 0)
		}
	}
	if raw, ok := event.TagValue("end"); ok {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			b.endTime = time.Unix(unix, 0)
		}
	}
	return b
}

func (b *BusyBlock) Kind() int           { return nostr.KindBusyBlock }
func (b *BusyBlock) Event() *nostr.Event { return b.event }
func (b *BusyBlock) Address() *nostr.Address {
	return nostr.AddressOf(b.event)
}

// Get the stable identifier (d tag)
func (b *BusyBlock) Identifier() string {
	return b.identifier
}

// Get the inclusive start instant
func (b *BusyBlock) StartTime() time.Time {
	return b.startTime
}

// Get the exclusive end instant
func (b *BusyBlock) EndTime() time.Time {
	return b.endTime
}

// Get the description (envelope content, may be empty)
func (b *BusyBlock) Description() string {
	return b.event.Content
}

// Get the block length
func (b *BusyBlock) Duration() time.Duration {
	return b.endTime.Sub(b.startTime)
}

// Whether now falls inside [start, end)
func (b *BusyBlock) IsActive() bool {
	now := time.Now()
	return !now.Before(b.startTime) && now.Before(b.endTime)
}

// Whether the block has already ended
func (b *BusyBlock) IsPast() bool {
	return !time.Now().Before(b.endTime)
}

// Whether the block has not started yet
func (b *BusyBlock) IsFuture() bool {
	return time.Now().Before(b.startTime)
}

// Whether end is strictly after start
func (b *BusyBlock) HasValidTimeRange() bool {
	return b.endTime.After(b.startTime)
}

// Mutable draft of a busy block. Time-range invariants are enforced on
// the setters; a failed set leaves the draft unchanged.
type BusyBlockDraft struct {
	event *nostr.Event
}

// Create a new draft. Fails when end is not strictly after start.
// Sub-second precision is truncated to whole seconds.
func NewBusyBlockDraft(pubKey string, start, end time.Time) (*BusyBlockDraft, error) {
	d := &BusyBlockDraft{
		event: &nostr.Event{
			Kind:      nostr.KindBusyBlock,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	if err := d.SetTimeRange(start, end); err != nil {
		return nil, err
	}
	return d, nil
}

// Wrap an existing envelope for editing
func WrapBusyBlockDraft(event *nostr.Event) *BusyBlockDraft {
	return &BusyBlockDraft{event: event}
}

// Get the backing envelope to hand to the signer. Ownership transfers
// with it.
func (d *BusyBlockDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *BusyBlockDraft) View() *BusyBlock {
	return NewBusyBlock(d.event)
}

// Set the stable identifier
func (d *BusyBlockDraft) SetIdentifier(identifier string) *BusyBlockDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *BusyBlockDraft) SetCreatedAt(createdAt int64) *BusyBlockDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the description; empty clears it
func (d *BusyBlockDraft) SetDescription(description string) *BusyBlockDraft {
	d.event.Content = description
	return d
}

// Set both bounds at once. Fails when end is not strictly after start.
func (d *BusyBlockDraft) SetTimeRange(start, end time.Time) error {
	if !end.After(start) {
		return NewValidationError("end time must be after start time", map[string]any{
			"start": start.Unix(),
			"end":   end.Unix(),
		})
	}
	d.event.SetTag("start", strconv.FormatInt(start.Unix(), 10))
	d.event.SetTag("end", strconv.FormatInt(end.Unix(), 10))
	return nil
}

// Move the end bound. Fails when the new end is not strictly after the
// current start.
func (d *BusyBlockDraft) ExtendEnd(end time.Time) error {
	start := d.View().StartTime()
	if !end.After(start) {
		return NewValidationError("end time must be after start time", map[string]any{
			"start": start.Unix(),
			"end":   end.Unix(),
		})
	}
	d.event.SetTag("end", strconv.FormatInt(end.Unix(), 10))
	return nil
}

// Shift both bounds by the same offset, preserving duration
func (d *BusyBlockDraft) Move(offset time.Duration) *BusyBlockDraft {
	view := d.View()
	d.event.SetTag("start", strconv.FormatInt(view.StartTime().Add(offset).Unix(), 10))
	d.event.SetTag("end", strconv.FormatInt(view.EndTime().Add(offset).Unix(), 10))
	return d
}
