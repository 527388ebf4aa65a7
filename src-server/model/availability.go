package model

import (
	"strconv"
	"time"

	"nostrcal/src-server/nostr"
)

// One weekly recurring window of an availability template. Day is a
// two-letter weekday code (MO TU WE TH FR SA SU); Start and End are
// local wall-clock times formatted "HH:MM".
type ScheduleBlock struct {
	Day   string
	Start string
	End   string
}

// Read view over an availability template event (kind 31926): a weekly
// schedule plus booking parameters, referencing a parent calendar.
// All fields are parsed once at construction; reads are total and
// reflect whatever was received, malformed or not.
type Availability struct {
	event *nostr.Event

	identifier         string
	calendarAddress    *nostr.Address
	title              string
	scheduleBlocks     []ScheduleBlock
	timeZone           string
	duration           string
	interval           string
	bufferBefore       string
	bufferAfter        string
	minNotice          string
	maxAdvance         string
	maxAdvanceBusiness bool
	amount             *int64
}

// Create a read view from an envelope. Never fails; absent or
// malformed tags degrade to zero values.
func NewAvailability(event *nostr.Event) *Availability {
	a := &Availability{event: event}
	a.identifier, _ = event.TagValue("d")
	if raw, ok := event.TagValue("a"); ok {
		a.calendarAddress = nostr.ParseAddress(raw)
	}
	a.title, _ = event.TagValue("title")
	for _, tag := range event.TagsByName("sch") {
		// entries missing any of day/start/end are dropped
		if len(tag) < 4 {
			continue
		}
		a.scheduleBlocks = append(a.scheduleBlocks, ScheduleBlock{
			Day:   tag[1],
			Start: tag[2],
			End:   tag[3],
		})
	}
	a.timeZone, _ = event.TagValue("tzid")
	a.duration, _ = event.TagValue("duration")
	a.interval, _ = event.TagValue("interval")
	a.bufferBefore, _ = event.TagValue("buffer_before")
	a.bufferAfter, _ = event.TagValue("buffer_after")
	a.minNotice, _ = event.TagValue("min_notice")
	a.maxAdvance, _ = event.TagValue("max_advance")
	if raw, ok := event.TagValue("max_advance_business"); ok {
		a.maxAdvanceBusiness = raw == "true"
	}
	a.amount = parseAmount(event)
	return a
}

func parseAmount(event *nostr.Event) *int64 {
	raw, ok := event.TagValue("amount")
	if !ok {
		return nil
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &amount
}

func (a *Availability) Kind() int           { return nostr.KindAvailability }
func (a *Availability) Event() *nostr.Event { return a.event }
func (a *Availability) Address() *nostr.Address {
	return nostr.AddressOf(a.event)
}

// Get the stable identifier (d tag)
func (a *Availability) Identifier() string {
	return a.identifier
}

// Get the parent calendar address, nil when absent or malformed
func (a *Availability) CalendarAddress() *nostr.Address {
	return a.calendarAddress
}

// Get the display title
func (a *Availability) Title() string {
	return a.title
}

// Get the weekly schedule blocks in tag order
func (a *Availability) ScheduleBlocks() []ScheduleBlock {
	return a.scheduleBlocks
}

// Get the number of weekly schedule blocks
func (a *Availability) ScheduleBlockCount() int {
	return len(a.scheduleBlocks)
}

// Get the IANA time zone name, empty when unset
func (a *Availability) TimeZone() string {
	return a.timeZone
}

// Get the slot duration as an ISO-8601 duration string
func (a *Availability) Duration() string {
	return a.duration
}

// Get the slot start interval as an ISO-8601 duration string
func (a *Availability) Interval() string {
	return a.interval
}

// Get the pre-slot buffer as an ISO-8601 duration string
func (a *Availability) BufferBefore() string {
	return a.bufferBefore
}

// Get the post-slot buffer as an ISO-8601 duration string
func (a *Availability) BufferAfter() string {
	return a.bufferAfter
}

// Get the minimum booking notice as an ISO-8601 duration string
func (a *Availability) MinNotice() string {
	return a.minNotice
}

// Get the maximum booking advance as an ISO-8601 duration string
func (a *Availability) MaxAdvance() string {
	return a.maxAdvance
}

// Whether max advance counts business days only. Only the literal tag
// value "true" reads as true.
func (a *Availability) MaxAdvanceBusiness() bool {
	return a.maxAdvanceBusiness
}

// Get the booking price in satoshis, nil when absent or unparsable
func (a *Availability) Amount() *int64 {
	return a.amount
}

// Whether booking a slot requires payment
func (a *Availability) RequiresPayment() bool {
	return a.amount != nil && *a.amount > 0
}

// Get the free-text description (envelope content)
func (a *Availability) Description() string {
	return a.event.Content
}

// Mutable draft of an availability template. Exclusively owned by its
// constructing call site until handed to the signer; signed events must
// not be mutated further.
type AvailabilityDraft struct {
	event *nostr.Event
}

// Create a new draft. Calendar address, title and schedule blocks are
// required; the identifier is auto-generated and created_at defaults to
// now in whole seconds.
func NewAvailabilityDraft(pubKey string, calendar nostr.Address, title string, blocks []ScheduleBlock) *AvailabilityDraft {
	d := &AvailabilityDraft{
		event: &nostr.Event{
			Kind:      nostr.KindAvailability,
			PubKey:    pubKey,
			CreatedAt: time.Now().Unix(),
		},
	}
	d.event.SetTag("d", NewIdentifier())
	d.SetCalendarAddress(calendar)
	d.SetTitle(title)
	d.SetScheduleBlocks(blocks)
	return d
}

// Wrap an existing envelope for editing, e.g. to supersede a published
// template with a new version
func WrapAvailabilityDraft(event *nostr.Event) *AvailabilityDraft {
	return &AvailabilityDraft{event: event}
}

// Get the backing envelope to hand to the signer. Ownership transfers
// with it.
func (d *AvailabilityDraft) Unsigned() *nostr.Event {
	return d.event
}

// Get the current typed view of the draft
func (d *AvailabilityDraft) View() *Availability {
	return NewAvailability(d.event)
}

// Set the stable identifier
func (d *AvailabilityDraft) SetIdentifier(identifier string) *AvailabilityDraft {
	d.event.SetTag("d", identifier)
	return d
}

// Set the creation timestamp in unix seconds
func (d *AvailabilityDraft) SetCreatedAt(createdAt int64) *AvailabilityDraft {
	d.event.CreatedAt = createdAt
	return d
}

// Set the parent calendar address
func (d *AvailabilityDraft) SetCalendarAddress(calendar nostr.Address) *AvailabilityDraft {
	d.event.SetTag("a", calendar.String())
	return d
}

// Set the display title
func (d *AvailabilityDraft) SetTitle(title string) *AvailabilityDraft {
	d.event.SetTag("title", title)
	return d
}

// Replace all schedule blocks. Removing then reinserting keeps the tag
// list free of duplicates when the same sequence is set twice.
func (d *AvailabilityDraft) SetScheduleBlocks(blocks []ScheduleBlock) *AvailabilityDraft {
	d.event.RemoveTags("sch")
	for _, block := range blocks {
		d.event.AppendTag("sch", block.Day, block.Start, block.End)
	}
	return d
}

// Append one schedule block
func (d *AvailabilityDraft) AddScheduleBlock(block ScheduleBlock) *AvailabilityDraft {
	d.event.AppendTag("sch", block.Day, block.Start, block.End)
	return d
}

// Remove every schedule block equal to the given one
func (d *AvailabilityDraft) RemoveScheduleBlock(block ScheduleBlock) *AvailabilityDraft {
	d.event.RemoveTagsMatching("sch", block.Day, block.Start, block.End)
	return d
}

// Set the IANA time zone name; empty removes the tag
func (d *AvailabilityDraft) SetTimeZone(tzid string) *AvailabilityDraft {
	d.event.SetTag("tzid", tzid)
	return d
}

// Set the slot duration (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetDuration(duration string) *AvailabilityDraft {
	d.event.SetTag("duration", duration)
	return d
}

// Set the slot start interval (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetInterval(interval string) *AvailabilityDraft {
	d.event.SetTag("interval", interval)
	return d
}

// Set the pre-slot buffer (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetBufferBefore(buffer string) *AvailabilityDraft {
	d.event.SetTag("buffer_before", buffer)
	return d
}

// Set the post-slot buffer (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetBufferAfter(buffer string) *AvailabilityDraft {
	d.event.SetTag("buffer_after", buffer)
	return d
}

// Set the minimum booking notice (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetMinNotice(notice string) *AvailabilityDraft {
	d.event.SetTag("min_notice", notice)
	return d
}

// Set the maximum booking advance (ISO-8601); empty removes the tag
func (d *AvailabilityDraft) SetMaxAdvance(advance string) *AvailabilityDraft {
	d.event.SetTag("max_advance", advance)
	return d
}

// Set whether max advance counts business days only. Stored as the
// literal string "true" or "false".
func (d *AvailabilityDraft) SetMaxAdvanceBusiness(businessDays bool) *AvailabilityDraft {
	d.event.SetTag("max_advance_business", strconv.FormatBool(businessDays))
	return d
}

// Set the booking price in satoshis; nil removes the tag
func (d *AvailabilityDraft) SetAmount(amount *int64) *AvailabilityDraft {
	if amount == nil {
		d.event.RemoveTags("amount")
		return d
	}
	d.event.SetTag("amount", strconv.FormatInt(*amount, 10))
	return d
}

// Set the free-text description (envelope content)
func (d *AvailabilityDraft) SetDescription(description string) *AvailabilityDraft {
	d.event.Content = description
	return d
}
