package nostr

// A storage query. Empty slices/maps mean "no constraint on this
// dimension". Tag constraints map a tag name to acceptable first
// positional values, e.g. Tags["a"] = ["31923:bob:meet1"].
type Filter struct {
	IDs     []string
	Authors []string
	Kinds   []int
	Tags    map[string][]string
	Limit   int
}

// Whether the event satisfies every constraint of the filter. Used by
// the store tests and any in-memory querier; the SQL store compiles the
// same semantics into WHERE clauses.
func (f Filter) Matches(event *Event) bool {
	if event == nil {
		return false
	}
	if len(f.IDs) > 0 && !contains(f.IDs, event.ID) {
		return false
	}
	if len(f.Authors) > 0 && !contains(f.Authors, event.PubKey) {
		return false
	}
	if len(f.Kinds) > 0 {
		found := false
		for _, kind := range f.Kinds {
			if kind == event.Kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for name, values := range f.Tags {
		found := false
		for _, tag := range event.TagsByName(name) {
			if contains(values, tag.Value()) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
