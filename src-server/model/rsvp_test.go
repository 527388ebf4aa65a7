package model_test

import (
	"testing"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
)

func TestRSVP(t *testing.T) {
	target := nostr.Address{Kind: 31923, PubKey: "bob", Identifier: "meet1"}
	draft := model.NewRSVPDraft("alice", target, model.RSVPAccepted).
		SetNote("see you there")

	view := draft.View()
	if view.EventAddress() == nil || view.EventAddress().String() != "31923:bob:meet1" {
		t.Error("wrong event address", view.EventAddress())
	}
	if !view.IsAccepted() || view.IsDeclined() || view.IsTentative() {
		t.Error("statuses should be mutually exclusive")
	}
	if view.Note() != "see you there" {
		t.Error("note round trip failed")
	}

	// case: status changes replace the tag
	draft.SetStatus(model.RSVPTentative)
	view = draft.View()
	if !view.IsTentative() || view.IsAccepted() {
		t.Error("status should have changed to tentative")
	}
	if tags := draft.Unsigned().TagsByName("status"); len(tags) != 1 {
		t.Error("status tag should not be duplicated", tags)
	}

	// case: missing address is a valid degraded state
	degraded := model.NewRSVP(&nostr.Event{Kind: nostr.KindRSVP, PubKey: "alice"})
	if degraded.EventAddress() != nil {
		t.Error("missing a tag should read as nil")
	}

	// case: malformed address is a valid degraded state
	malformed := &nostr.Event{Kind: nostr.KindRSVP, PubKey: "alice"}
	malformed.SetTag("a", "not-an-address")
	if model.NewRSVP(malformed).EventAddress() != nil {
		t.Error("malformed a tag should read as nil")
	}
}

func TestRegistry(t *testing.T) {
	registry := model.DefaultRegistry()

	for _, kind := range []int{
		nostr.KindDateEvent,
		nostr.KindTimeEvent,
		nostr.KindCalendar,
		nostr.KindRSVP,
		nostr.KindAvailability,
		nostr.KindBusyBlock,
	} {
		if !registry.Knows(kind) {
			t.Error("kind should be registered", kind)
		}
		event := &nostr.Event{Kind: kind}
		view, ok := registry.Decode(event)
		if !ok {
			t.Error("decode should succeed", kind)
			continue
		}
		if view.Kind() != kind {
			t.Error("view kind mismatch", kind, view.Kind())
		}

		// the draft half wraps the same envelope
		draft, ok := registry.Wrap(event)
		if !ok {
			t.Error("wrap should succeed", kind)
			continue
		}
		if draft.Unsigned() != event {
			t.Error("draft should wrap the same envelope", kind)
		}
	}

	// case: unknown kinds stay opaque
	if _, ok := registry.Decode(&nostr.Event{Kind: 1}); ok {
		t.Error("kind 1 should not decode")
	}
	if _, ok := registry.Wrap(&nostr.Event{Kind: 1}); ok {
		t.Error("kind 1 should not wrap")
	}
}
