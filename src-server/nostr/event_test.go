package nostr_test

import (
	"testing"

	"nostrcal/src-server/nostr"
)

func TestEventTags(t *testing.T) {
	event := &nostr.Event{Kind: 31926}

	// case: first matching tag wins on read
	event.AppendTag("title", "first")
	event.AppendTag("title", "second")
	if value, _ := event.TagValue("title"); value != "first" {
		t.Error("first tag should win", value)
	}

	// case: SetTag replaces the first tag in place
	event.RemoveTags("title")
	event.AppendTag("title", "old")
	event.SetTag("title", "new")
	if tags := event.TagsByName("title"); len(tags) != 1 || tags[0].Value() != "new" {
		t.Error("SetTag should insert-or-replace", tags)
	}

	// case: setting an empty value removes the tag
	event.SetTag("title", "")
	if _, ok := event.TagValue("title"); ok {
		t.Error("empty set should remove the tag")
	}

	// case: repeatable tags keep insertion order
	event.AppendTag("sch", "MO", "09:00", "17:00")
	event.AppendTag("sch", "TU", "09:00", "17:00")
	tags := event.TagsByName("sch")
	if len(tags) != 2 || tags[0][1] != "MO" || tags[1][1] != "TU" {
		t.Error("sch order should be preserved", tags)
	}

	// case: RemoveTagsMatching only removes exact value matches
	event.RemoveTagsMatching("sch", "MO", "09:00", "17:00")
	tags = event.TagsByName("sch")
	if len(tags) != 1 || tags[0][1] != "TU" {
		t.Error("only the MO block should be removed", tags)
	}
}

func TestComputeID(t *testing.T) {
	event := &nostr.Event{
		Kind:      31927,
		PubKey:    "bob",
		CreatedAt: 1700000000,
		Tags:      []nostr.Tag{{"d", "block1"}},
	}
	id, err := event.ComputeID()
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 64 {
		t.Error("id should be 64 hex chars", id)
	}

	// case: same content, same id
	again, err := event.ComputeID()
	if err != nil {
		t.Fatal(err)
	}
	if id != again {
		t.Error("id should be deterministic")
	}

	// case: different content, different id
	event.Content = "changed"
	changed, err := event.ComputeID()
	if err != nil {
		t.Fatal(err)
	}
	if id == changed {
		t.Error("id should change with content")
	}
}
