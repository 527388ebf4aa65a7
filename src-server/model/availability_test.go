package model_test

import (
	"testing"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
)

func TestAvailabilityDraft(t *testing.T) {
	calendar := nostr.ParseAddress("31924:alice:cal-work")
	if calendar == nil {
		t.Fatal("calendar address should parse")
	}
	draft := model.NewAvailabilityDraft("alice", *calendar, "Office Hours", []model.ScheduleBlock{
		{Day: "MO", Start: "09:00", End: "17:00"},
		{Day: "TU", Start: "09:00", End: "17:00"},
	})

	view := draft.View()
	if view.Title() != "Office Hours" {
		t.Error("wrong title", view.Title())
	}
	if value, _ := draft.Unsigned().TagValue("a"); value != "31924:alice:cal-work" {
		t.Error("wrong calendar reference", value)
	}
	if view.ScheduleBlockCount() != 2 {
		t.Error("wrong schedule block count", view.ScheduleBlockCount())
	}
	if len(view.Identifier()) != 16 {
		t.Error("identifier should be 16 hex chars", view.Identifier())
	}
	if draft.Unsigned().CreatedAt == 0 {
		t.Error("created_at should default to now")
	}

	// case: setting the same blocks twice does not duplicate tags
	draft.SetScheduleBlocks([]model.ScheduleBlock{
		{Day: "MO", Start: "09:00", End: "17:00"},
		{Day: "TU", Start: "09:00", End: "17:00"},
	})
	if got := draft.View().ScheduleBlockCount(); got != 2 {
		t.Error("bulk set should be idempotent", got)
	}

	// case: incremental add/remove
	draft.AddScheduleBlock(model.ScheduleBlock{Day: "WE", Start: "10:00", End: "12:00"})
	if got := draft.View().ScheduleBlockCount(); got != 3 {
		t.Error("add should append", got)
	}
	draft.RemoveScheduleBlock(model.ScheduleBlock{Day: "WE", Start: "10:00", End: "12:00"})
	if got := draft.View().ScheduleBlockCount(); got != 2 {
		t.Error("remove should drop the matching block", got)
	}

	// case: round-trip on scalar setters
	draft.SetDuration("PT30M").
		SetInterval("PT15M").
		SetBufferBefore("PT5M").
		SetBufferAfter("PT5M").
		SetMinNotice("PT1H").
		SetMaxAdvance("P14D").
		SetMaxAdvanceBusiness(true).
		SetTimeZone("Europe/Berlin").
		SetDescription("book me")
	view = draft.View()
	if view.Duration() != "PT30M" || view.Interval() != "PT15M" {
		t.Error("duration/interval round trip failed")
	}
	if view.BufferBefore() != "PT5M" || view.BufferAfter() != "PT5M" {
		t.Error("buffer round trip failed")
	}
	if view.MinNotice() != "PT1H" || view.MaxAdvance() != "P14D" {
		t.Error("notice/advance round trip failed")
	}
	if !view.MaxAdvanceBusiness() {
		t.Error("max_advance_business should be true")
	}
	if view.TimeZone() != "Europe/Berlin" {
		t.Error("tzid round trip failed")
	}
	if view.Description() != "book me" {
		t.Error("description round trip failed")
	}

	// case: clearing an optional field removes the tag
	draft.SetTimeZone("")
	if _, ok := draft.Unsigned().TagValue("tzid"); ok {
		t.Error("empty tzid should remove the tag")
	}
}

func TestAvailabilityAmount(t *testing.T) {
	calendar := nostr.Address{Kind: 31924, PubKey: "alice", Identifier: "cal"}
	draft := model.NewAvailabilityDraft("alice", calendar, "Paid", nil)

	// case: no amount, no payment
	if draft.View().RequiresPayment() {
		t.Error("no amount should not require payment")
	}

	// case: positive amount requires payment
	amount := int64(21000)
	draft.SetAmount(&amount)
	view := draft.View()
	if view.Amount() == nil || *view.Amount() != 21000 {
		t.Error("amount round trip failed")
	}
	if !view.RequiresPayment() {
		t.Error("positive amount should require payment")
	}

	// case: zero amount does not require payment
	zero := int64(0)
	draft.SetAmount(&zero)
	if draft.View().RequiresPayment() {
		t.Error("zero amount should not require payment")
	}

	// case: nil removes the tag
	draft.SetAmount(nil)
	if draft.View().Amount() != nil {
		t.Error("nil amount should remove the tag")
	}

	// case: unparsable amount reads as nil, never errors
	draft.Unsigned().SetTag("amount", "a lot")
	if draft.View().Amount() != nil {
		t.Error("unparsable amount should read as nil")
	}
}

func TestAvailabilityRead(t *testing.T) {
	event := &nostr.Event{
		Kind:   nostr.KindAvailability,
		PubKey: "alice",
		Tags: []nostr.Tag{
			{"d", "office"},
			{"title", "Office Hours"},
			{"sch", "MO", "09:00", "17:00"},
			{"sch", "TU"}, // too short, dropped
			{"sch"},       // too short, dropped
			{"max_advance_business", "TRUE"},
		},
	}
	view := model.NewAvailability(event)

	// case: schedule blocks with fewer than 3 values are dropped
	if view.ScheduleBlockCount() != 1 {
		t.Error("short sch tags should be dropped", view.ScheduleBlocks())
	}

	// case: only the literal "true" reads as true
	if view.MaxAdvanceBusiness() {
		t.Error(`"TRUE" should read as false`)
	}

	// case: absent optional fields read as zero values
	if view.TimeZone() != "" || view.Duration() != "" || view.Amount() != nil {
		t.Error("absent fields should be zero")
	}
	if view.CalendarAddress() != nil {
		t.Error("absent a tag should read as nil address")
	}
}
