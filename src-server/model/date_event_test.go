package model_test

import (
	"testing"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
)

func TestDateEventDraft(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	draft := model.NewDateEventDraft("alice", "Conference", start)

	view := draft.View()
	if view.Title() != "Conference" {
		t.Error("wrong title", view.Title())
	}
	if view.StartDate() != "2024-06-10" {
		t.Error("start should be a calendar date", view.StartDate())
	}

	// case: missing end defaults to start + 1 day
	end := view.EndDateTime()
	if end == nil || !end.Equal(start.AddDate(0, 0, 1)) {
		t.Error("missing end should default to start + 1 day", end)
	}

	// case: explicit end round-trips, end date exclusive
	draft.SetEndDate(time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local))
	view = draft.View()
	if view.EndDate() != "2024-06-12" {
		t.Error("end round trip failed", view.EndDate())
	}

	// case: the zero time clears the end
	draft.SetEndDate(time.Time{})
	if draft.View().EndDate() != "" {
		t.Error("zero end should remove the tag")
	}

	// case: unparsable start reads as nil, never errors
	broken := &nostr.Event{Kind: nostr.KindDateEvent}
	broken.SetTag("start", "June 10th")
	if model.NewDateEvent(broken).StartDateTime() != nil {
		t.Error("unparsable start should read as nil")
	}
}

func TestTimeEventDraft(t *testing.T) {
	start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	draft := model.NewTimeEventDraft("bob", "Standup", start).
		SetEnd(start.Add(time.Hour)).
		SetLocation("office").
		SetTimeZone("Europe/Berlin")

	view := draft.View()
	if got := view.StartDateTime(); got == nil || !got.Equal(start) {
		t.Error("start round trip failed", got)
	}
	if got := view.EndDateTime(); got == nil || !got.Equal(start.Add(time.Hour)) {
		t.Error("end round trip failed", got)
	}
	if view.Location() != "office" || view.TimeZone() != "Europe/Berlin" {
		t.Error("scalar round trip failed")
	}

	// case: sub-second precision truncates to whole seconds
	draft.SetStart(start.Add(500 * time.Millisecond))
	if got := draft.View().StartDateTime(); got == nil || !got.Equal(start) {
		t.Error("sub-second precision should truncate", got)
	}
}

func TestCalendarDraft(t *testing.T) {
	draft := model.NewCalendarDraft("alice", "Work")
	meeting := nostr.Address{Kind: nostr.KindTimeEvent, PubKey: "alice", Identifier: "meet1"}
	conf := nostr.Address{Kind: nostr.KindDateEvent, PubKey: "alice", Identifier: "conf"}

	draft.AddEventRef(meeting).AddEventRef(conf)
	view := draft.View()
	if len(view.EventRefs()) != 2 {
		t.Error("both refs should be present", view.EventRefs())
	}
	if view.EventRefs()[0] != meeting {
		t.Error("ref order should be preserved")
	}

	draft.RemoveEventRef(meeting)
	view = draft.View()
	if len(view.EventRefs()) != 1 || view.EventRefs()[0] != conf {
		t.Error("only the meeting ref should be removed", view.EventRefs())
	}
}
