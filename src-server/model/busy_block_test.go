package model_test

import (
	"errors"
	"testing"
	"time"

	"nostrcal/src-server/model"
)

func TestBusyBlockDraft(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	end := start.Add(2 * time.Hour)

	draft, err := model.NewBusyBlockDraft("alice", start, end)
	if err != nil {
		t.Fatal(err)
	}
	view := draft.View()
	if view.Duration() != 2*time.Hour {
		t.Error("wrong duration", view.Duration())
	}
	if !view.HasValidTimeRange() {
		t.Error("range should be valid")
	}
	if !view.IsFuture() || view.IsPast() || view.IsActive() {
		t.Error("tomorrow's block should be future only")
	}
	if !view.StartTime().Equal(start) || !view.EndTime().Equal(end) {
		t.Error("time round trip failed")
	}

	// case: equal instants fail and leave the draft unchanged
	if err := draft.SetTimeRange(start, start); err == nil {
		t.Error("equal instants should fail")
	} else {
		var validationErr *model.ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("should be a ValidationError", err)
		}
	}
	view = draft.View()
	if !view.StartTime().Equal(start) || !view.EndTime().Equal(end) {
		t.Error("failed set should leave the draft unchanged")
	}

	// case: extending end before the current start fails
	if err := draft.ExtendEnd(start.Add(-time.Hour)); err == nil {
		t.Error("extend before start should fail")
	}
	if err := draft.ExtendEnd(start.Add(3 * time.Hour)); err != nil {
		t.Error("valid extend should succeed", err)
	}
	if draft.View().Duration() != 3*time.Hour {
		t.Error("extend should move the end bound")
	}

	// case: move shifts both bounds, preserving duration
	draft.Move(30 * time.Minute)
	view = draft.View()
	if !view.StartTime().Equal(start.Add(30 * time.Minute)) {
		t.Error("move should shift start")
	}
	if view.Duration() != 3*time.Hour {
		t.Error("move should preserve duration")
	}
}

func TestBusyBlockConstruction(t *testing.T) {
	now := time.Now()

	// case: end before start fails at construction
	if _, err := model.NewBusyBlockDraft("alice", now, now.Add(-time.Hour)); err == nil {
		t.Error("inverted range should fail")
	}

	// case: active block
	draft, err := model.NewBusyBlockDraft("alice", now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	view := draft.View()
	if !view.IsActive() || view.IsPast() || view.IsFuture() {
		t.Error("block spanning now should be active")
	}

	// case: past block
	draft, err = model.NewBusyBlockDraft("alice", now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !draft.View().IsPast() {
		t.Error("ended block should be past")
	}
}
