package nostr

import (
	"fmt"
	"strconv"
	"strings"
)

// A replaceable event address: the kind:pubkey:identifier triple that
// names the latest version of a mutable logical record
type Address struct {
	Kind       int
	PubKey     string
	Identifier string
}

// Parse a replaceable event address. Returns nil when the string does
// not split into exactly three non-empty colon-delimited parts or the
// kind is not an integer. Pubkey format is not checked at this layer.
func ParseAddress(raw string) *Address {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return nil
	}
	if parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil
	}
	kind, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	return &Address{
		Kind:       kind,
		PubKey:     parts[1],
		Identifier: parts[2],
	}
}

// Get the address of a replaceable event. Returns nil for events
// without a d tag or with a non-replaceable kind.
func AddressOf(event *Event) *Address {
	if event == nil || !IsReplaceableKind(event.Kind) {
		return nil
	}
	identifier, ok := event.TagValue("d")
	if !ok || identifier == "" {
		return nil
	}
	return &Address{
		Kind:       event.Kind,
		PubKey:     event.PubKey,
		Identifier: identifier,
	}
}

func (a Address) String() string {
	return fmt.Sprintf("%d:%s:%s", a.Kind, a.PubKey, a.Identifier)
}
