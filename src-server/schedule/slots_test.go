package schedule_test

import (
	"testing"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
	"nostrcal/src-server/schedule"
)

func officeHours(t *testing.T) *model.Availability {
	t.Helper()
	calendar := nostr.Address{Kind: nostr.KindCalendar, PubKey: "alice", Identifier: "cal"}
	draft := model.NewAvailabilityDraft("alice", calendar, "Office Hours", []model.ScheduleBlock{
		{Day: "MO", Start: "09:00", End: "17:00"},
	})
	draft.SetDuration("PT1H").SetTimeZone("UTC")
	return draft.View()
}

func TestExpand(t *testing.T) {
	av := officeHours(t)

	// 2024-06-10 is a Monday
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	slots, err := schedule.Expand(av, nil, from, to, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 8 {
		t.Fatal("expected 8 hourly slots", len(slots))
	}
	if !slots[0].Start.Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)) {
		t.Error("first slot should start at 09:00", slots[0].Start)
	}
	if !slots[7].End.Equal(time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)) {
		t.Error("last slot should end at 17:00", slots[7].End)
	}

	// case: a busy block removes the overlapping slot
	busyDraft, err := model.NewBusyBlockDraft("alice",
		time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	slots, err = schedule.Expand(av, []*model.BusyBlock{busyDraft.View()}, from, to, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 7 {
		t.Error("busy block should remove one slot", len(slots))
	}
	for _, slot := range slots {
		if slot.Start.Equal(time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)) {
			t.Error("the 10:00 slot should be gone")
		}
	}

	// case: a Tuesday range yields nothing for a Monday-only template
	slots, err = schedule.Expand(av, nil,
		time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		now)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Error("no slots expected on Tuesday", len(slots))
	}
}

func TestExpandBookingWindows(t *testing.T) {
	av := officeHours(t)
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	// case: min notice clips the near edge
	draft := model.WrapAvailabilityDraft(av.Event())
	draft.SetMinNotice("PT1H")
	now := time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC)
	slots, err := schedule.Expand(draft.View(), nil, from, to, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 5 {
		t.Error("slots before now+notice should be clipped", len(slots))
	}
	if len(slots) > 0 && slots[0].Start.Before(now.Add(time.Hour)) {
		t.Error("first slot should respect the notice window", slots[0].Start)
	}

	// case: max advance clips the far edge
	draft.SetMinNotice("").SetMaxAdvance("PT2H")
	slots, err = schedule.Expand(draft.View(), nil, from, to, now)
	if err != nil {
		t.Fatal(err)
	}
	for _, slot := range slots {
		if slot.End.After(now.Add(2 * time.Hour)) {
			t.Error("slot should not exceed the advance window", slot.End)
		}
	}
}
