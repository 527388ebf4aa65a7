package store

import (
	"encoding/json"
	"fmt"

	"nostrcal/src-server/nostr"

	"github.com/uptrace/bun"
)

// One stored envelope. Tags are kept twice: as JSON on the event row
// (order-preserving source of truth) and flattened into tag_rows for
// filter queries.
type EventRow struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID        string `bun:"id,pk,notnull"`
	PubKey    string `bun:"pubkey,notnull"`
	Kind      int    `bun:"kind,notnull"`
	CreatedAt int64  `bun:"created_at,notnull"`
	Content   string `bun:"content"`
	TagsJSON  string `bun:"tags,notnull"`

	// first d tag value, extracted for replaceable-address lookups
	DTag string `bun:"d_tag"`

	Sig string `bun:"sig"`
}

// One (name, value) pair of a stored event's tags
type TagRow struct {
	bun.BaseModel `bun:"table:event_tags,alias:et"`

	EventID string `bun:"event_id,notnull"`
	Name    string `bun:"name,notnull"`
	Value   string `bun:"value,notnull"`
}

// Build a row from an envelope
func (r *EventRow) FromEvent(event *nostr.Event) error {
	if event.ID == "" {
		return fmt.Errorf("(*EventRow).FromEvent: event id is blank")
	}
	tags, err := json.Marshal(event.Tags)
	if err != nil {
		return fmt.Errorf("(*EventRow).FromEvent: %w", err)
	}
	r.ID = event.ID
	r.PubKey = event.PubKey
	r.Kind = event.Kind
	r.CreatedAt = event.CreatedAt
	r.Content = event.Content
	r.TagsJSON = string(tags)
	r.DTag, _ = event.TagValue("d")
	r.Sig = event.Sig
	return nil
}

// Rebuild the envelope from the row
func (r *EventRow) ToEvent() (*nostr.Event, error) {
	event := &nostr.Event{
		ID:        r.ID,
		PubKey:    r.PubKey,
		Kind:      r.Kind,
		CreatedAt: r.CreatedAt,
		Content:   r.Content,
		Sig:       r.Sig,
	}
	if err := json.Unmarshal([]byte(r.TagsJSON), &event.Tags); err != nil {
		return nil, fmt.Errorf("(*EventRow).ToEvent: %w", err)
	}
	return event, nil
}
