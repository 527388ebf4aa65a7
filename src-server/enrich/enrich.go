package enrich

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
)

// How many parent resolutions run at once within one pass
const workerCount = 4

// Fetches the current version of the event at the given address.
// Resolutions must be idempotent and side-effect free; a superseded
// pass simply discards results. Returning (nil, nil) means "nothing
// found", which callers treat the same as an error.
type ParentResolver interface {
	Resolve(ctx context.Context, addr nostr.Address) (*nostr.Event, error)
}

// Joins an event (possibly an RSVP) to its resolved parent and the
// start/end instants computed from whichever of the two carries the
// schedule. Constructed fresh each pass, never mutated after.
type EnrichedEvent struct {
	Event  *nostr.Event
	Parent *nostr.Event

	start *time.Time
	end   *time.Time
}

// Whether the underlying event is an RSVP
func (e *EnrichedEvent) IsRSVP() bool {
	return e.Event.Kind == nostr.KindRSVP
}

// Get the effective start instant, nil when unparsable
func (e *EnrichedEvent) StartDateTime() *time.Time {
	return e.start
}

// Get the effective exclusive end instant, nil for single-instant
// fallbacks and unparsable events
func (e *EnrichedEvent) EndDateTime() *time.Time {
	return e.end
}

// Whether the event occurs on the given calendar day. With no end
// instant the start must fall on the same calendar day; otherwise the
// day must satisfy day > start - 1 day and day < end. The one-day
// padding on the lower bound can admit an extra boundary day for
// multi-day events; other clients of the protocol share this behavior,
// so it is kept.
func (e *EnrichedEvent) OccursOnDay(day time.Time) bool {
	if e.start == nil {
		return false
	}
	day = truncateToDay(day)
	if e.end == nil {
		return day.Equal(truncateToDay(*e.start))
	}
	return day.After(e.start.AddDate(0, 0, -1)) && day.Before(*e.end)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Runs enrichment passes. Resolver is required; OnResolutionFailure is
// an optional hook (e.g. a metrics counter) called once per address
// that could not be resolved.
type Enricher struct {
	Resolver            ParentResolver
	OnResolutionFailure func(addr nostr.Address, err error)
}

// Enrich a flat set of raw events. RSVPs get their parent resolved at
// most once per distinct address per pass; a failed or empty resolution
// degrades to a nil parent, never drops the RSVP or fails the batch.
// Input order is preserved.
func (en *Enricher) Enrich(ctx context.Context, events []*nostr.Event) []*EnrichedEvent {
	parents := en.resolveParents(ctx, events)

	enriched := make([]*EnrichedEvent, 0, len(events))
	for _, event := range events {
		item := &EnrichedEvent{Event: event}
		if event.Kind == nostr.KindRSVP {
			if addr := model.NewRSVP(event).EventAddress(); addr != nil {
				item.Parent = parents[addr.String()]
			}
		}
		item.start, item.end = computeSpan(item)
		enriched = append(enriched, item)
	}
	return enriched
}

// Resolve every distinct RSVP parent address through a bounded worker
// pool, caching results for the duration of the pass
func (en *Enricher) resolveParents(ctx context.Context, events []*nostr.Event) map[string]*nostr.Event {
	var addrs []nostr.Address
	seen := make(map[string]struct{})
	for _, event := range events {
		if event.Kind != nostr.KindRSVP {
			continue
		}
		addr := model.NewRSVP(event).EventAddress()
		if addr == nil {
			continue
		}
		if _, ok := seen[addr.String()]; ok {
			continue
		}
		seen[addr.String()] = struct{}{}
		addrs = append(addrs, *addr)
	}
	if len(addrs) == 0 {
		return nil
	}

	parents := make(map[string]*nostr.Event, len(addrs))
	var mu sync.Mutex
	jobs := make(chan nostr.Address, len(addrs))
	var wg sync.WaitGroup
	for range workerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range jobs {
				parent, err := en.Resolver.Resolve(ctx, addr)
				if err != nil || parent == nil {
					slog.Debug("can't resolve RSVP parent", "address", addr.String(), "error", err)
					if en.OnResolutionFailure != nil {
						en.OnResolutionFailure(addr, err)
					}
					continue
				}
				mu.Lock()
				parents[addr.String()] = parent
				mu.Unlock()
			}
		}()
	}
	for _, addr := range addrs {
		jobs <- addr
	}
	close(jobs)
	wg.Wait()
	return parents
}

// Enrich with a bare resolver and no failure hook
func Enrich(ctx context.Context, events []*nostr.Event, resolver ParentResolver) []*EnrichedEvent {
	return (&Enricher{Resolver: resolver}).Enrich(ctx, events)
}

// Compute start/end by kind dispatch on the effective event: the
// resolved parent when present, else the event itself. An RSVP without
// a resolved parent falls back to its own creation instant so it still
// surfaces somewhere on the calendar.
func computeSpan(item *EnrichedEvent) (*time.Time, *time.Time) {
	effective := item.Event
	if item.IsRSVP() && item.Parent != nil {
		effective = item.Parent
	}

	switch effective.Kind {
	case nostr.KindRSVP:
		createdAt := time.Unix(item.Event.CreatedAt, 0)
		return &createdAt, nil
	case nostr.KindDateEvent:
		view := model.NewDateEvent(effective)
		return view.StartDateTime(), view.EndDateTime()
	case nostr.KindBusyBlock:
		view := model.NewBusyBlock(effective)
		if view.StartTime().IsZero() {
			return nil, nil
		}
		start := view.StartTime()
		end := view.EndTime()
		if end.IsZero() {
			end = start
		}
		return &start, &end
	default:
		view := model.NewTimeEvent(effective)
		return view.StartDateTime(), view.EndDateTime()
	}
}

// Sort by computed start time descending, nil starts last, stable
// otherwise
func SortByStartDesc(items []*EnrichedEvent) {
	sort.SliceStable(items, func(i, j int) bool {
		left, right := items[i].start, items[j].start
		switch {
		case left == nil:
			return false
		case right == nil:
			return true
		default:
			return left.After(*right)
		}
	})
}
