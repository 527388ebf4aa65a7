package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"nostrcal/src-server/model"

	"github.com/xyedo/rrule"
)

// One concrete bookable interval derived from an availability template
type Slot struct {
	Start time.Time
	End   time.Time
}

var weekdays = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// Expand an availability template into concrete slots between from and
// to, subtracting busy blocks. Schedule blocks with unknown day codes
// or unparsable times are skipped. Booking windows (min_notice,
// max_advance) are applied relative to now.
func Expand(av *model.Availability, busy []*model.BusyBlock, from, to, now time.Time) ([]Slot, error) {
	location := time.Local
	if av.TimeZone() != "" {
		loaded, err := time.LoadLocation(av.TimeZone())
		if err != nil {
			return nil, fmt.Errorf("Expand: invalid tzid %q: %w", av.TimeZone(), err)
		}
		location = loaded
	}

	if notice := durationOr(av.MinNotice(), 0); notice > 0 {
		if earliest := now.Add(notice); earliest.After(from) {
			from = earliest
		}
	}
	if advance := durationOr(av.MaxAdvance(), 0); advance > 0 {
		latest := now.Add(advance)
		if av.MaxAdvanceBusiness() {
			latest = addBusinessDays(now, int(advance/(24*time.Hour)), location)
		}
		if latest.Before(to) {
			to = latest
		}
	}
	if !to.After(from) {
		return nil, nil
	}

	slotDuration := durationOr(av.Duration(), 0)
	interval := durationOr(av.Interval(), slotDuration)
	bufferBefore := durationOr(av.BufferBefore(), 0)
	bufferAfter := durationOr(av.BufferAfter(), 0)

	var slots []Slot
	for _, block := range av.ScheduleBlocks() {
		weekday, ok := weekdays[strings.ToUpper(block.Day)]
		if !ok {
			continue
		}
		startHour, startMinute, ok := parseWallClock(block.Start)
		if !ok {
			continue
		}
		endHour, endMinute, ok := parseWallClock(block.End)
		if !ok {
			continue
		}

		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{weekday},
			Dtstart:   time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, location),
		})
		if err != nil {
			return nil, fmt.Errorf("Expand: %w", err)
		}

		for _, day := range rule.Between(from.Add(-24*time.Hour), to, true) {
			windowStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, location)
			windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMinute, 0, 0, location)
			if !windowEnd.After(windowStart) {
				continue
			}

			duration := slotDuration
			if duration == 0 {
				// no slot duration: the whole window is one slot
				duration = windowEnd.Sub(windowStart)
			}
			step := interval
			if step == 0 {
				step = duration
			}

			for slotStart := windowStart; !slotStart.Add(duration).After(windowEnd); slotStart = slotStart.Add(step) {
				slotEnd := slotStart.Add(duration)
				if slotStart.Before(from) || slotEnd.After(to) {
					continue
				}
				if conflicts(slotStart.Add(-bufferBefore), slotEnd.Add(bufferAfter), busy) {
					continue
				}
				slots = append(slots, Slot{Start: slotStart, End: slotEnd})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

// Whether [start, end) overlaps any busy block
func conflicts(start, end time.Time, busy []*model.BusyBlock) bool {
	for _, block := range busy {
		if !block.HasValidTimeRange() {
			continue
		}
		if start.Before(block.EndTime()) && end.After(block.StartTime()) {
			return true
		}
	}
	return false
}

// Parse "HH:MM"
func parseWallClock(raw string) (hour, minute int, ok bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// Step forward the given number of weekdays, skipping Saturday and
// Sunday
func addBusinessDays(t time.Time, days int, location *time.Location) time.Time {
	t = t.In(location)
	for days > 0 {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() != time.Saturday && t.Weekday() != time.Sunday {
			days--
		}
	}
	return t
}
