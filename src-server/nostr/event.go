package nostr

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// A single tag on an event. The first element is the tag name, the rest
// are positional values.
type Tag []string

// Get the tag name
func (t Tag) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Get the first positional value
func (t Tag) Value() string {
	if len(t) < 2 {
		return ""
	}
	return t[1]
}

// The generic signed record every calendar object is stored as. Tag
// order is preserved and significant for repeatable tags.
type Event struct {
	ID        string `json:"id"`
	PubKey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Tags      []Tag  `json:"tags"`
	Content   string `json:"content"`
	Sig       string `json:"sig,omitempty"`
}

// Get the first positional value of the first tag with the given name.
// Returns false when no such tag exists.
func (e *Event) TagValue(name string) (string, bool) {
	for _, tag := range e.Tags {
		if tag.Name() == name {
			return tag.Value(), true
		}
	}
	return "", false
}

// Get all tags with the given name, in insertion order
func (e *Event) TagsByName(name string) []Tag {
	var tags []Tag
	for _, tag := range e.Tags {
		if tag.Name() == name {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Insert-or-replace the first tag with the given name. An empty value
// removes the tag instead.
func (e *Event) SetTag(name string, values ...string) {
	empty := true
	for _, value := range values {
		if value != "" {
			empty = false
			break
		}
	}
	if empty {
		e.RemoveTags(name)
		return
	}
	newTag := append(Tag{name}, values...)
	for i, tag := range e.Tags {
		if tag.Name() == name {
			e.Tags[i] = newTag
			return
		}
	}
	e.Tags = append(e.Tags, newTag)
}

// Append a tag without replacing existing ones with the same name
func (e *Event) AppendTag(name string, values ...string) {
	e.Tags = append(e.Tags, append(Tag{name}, values...))
}

// Remove every tag with the given name
func (e *Event) RemoveTags(name string) {
	kept := e.Tags[:0]
	for _, tag := range e.Tags {
		if tag.Name() != name {
			kept = append(kept, tag)
		}
	}
	e.Tags = kept
}

// Remove every tag with the given name whose positional values equal
// the given values exactly
func (e *Event) RemoveTagsMatching(name string, values ...string) {
	kept := e.Tags[:0]
	for _, tag := range e.Tags {
		if tag.Name() == name && len(tag) == len(values)+1 {
			match := true
			for i, value := range values {
				if tag[i+1] != value {
					match = false
					break
				}
			}
			if match {
				continue
			}
		}
		kept = append(kept, tag)
	}
	e.Tags = kept
}

// Compute the event ID: the hex sha256 of the canonical serialization
// [0, pubkey, created_at, kind, tags, content]
func (e *Event) ComputeID() (string, error) {
	tags := e.Tags
	if tags == nil {
		tags = []Tag{}
	}
	serialized, err := json.Marshal([]any{0, e.PubKey, e.CreatedAt, e.Kind, tags, e.Content})
	if err != nil {
		return "", fmt.Errorf("Event.ComputeID: %w", err)
	}
	sum := sha256.Sum256(serialized)
	return hex.EncodeToString(sum[:]), nil
}
