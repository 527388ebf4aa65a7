package route

import (
	"log/slog"
	"net/http"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
	"nostrcal/src-server/utils"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	// export one author's events and busy blocks as an iCalendar feed
	muxer.HandleFunc("GET /ical/{pubkey}", func(w http.ResponseWriter, r *http.Request) {
		pubKey := r.PathValue("pubkey")
		if pubKey == "" {
			http.Error(w, "missing pubkey", http.StatusBadRequest)
			return
		}

		events, err := as.Store.Query(r.Context(), nostr.Filter{
			Authors: []string{pubKey},
			Kinds: []int{
				nostr.KindDateEvent,
				nostr.KindTimeEvent,
				nostr.KindBusyBlock,
			},
		})
		if err != nil {
			slog.Error("can't query events for ical export", "error", err)
			http.Error(w, "can't query events", http.StatusInternalServerError)
			return
		}

		cal := ical.NewCalendar()
		cal.Props.SetText(ical.PropVersion, "2.0")
		cal.Props.SetText(ical.PropProductID, "-//nostrcal//EN")

		for _, event := range events {
			view, ok := as.Registry.Decode(event)
			if !ok {
				continue
			}
			component := toVEvent(view, as.Config.GetHostname())
			if component == nil {
				continue
			}
			cal.Children = append(cal.Children, component)
		}

		w.Header().Set("Content-Type", "text/calendar")
		if err := ical.NewEncoder(w).Encode(cal); err != nil {
			slog.Error("can't encode ical calendar", "error", err)
		}
	})
}

// Convert a typed view to a VEVENT. Views without a parsable start are
// skipped.
func toVEvent(view model.View, hostname string) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	uid := view.Event().ID
	if uid == "" {
		uid = uuid.NewString()
	}
	ve.Props.SetText(ical.PropUID, uid+"@"+hostname)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	switch v := view.(type) {
	case *model.DateEvent:
		start := v.StartDateTime()
		end := v.EndDateTime()
		if start == nil || end == nil {
			return nil
		}
		ve.Props.SetText(ical.PropSummary, v.Title())
		ve.Props.SetDateTime(ical.PropDateTimeStart, *start)
		ve.Props.SetDateTime(ical.PropDateTimeEnd, *end)
		if v.Location() != "" {
			ve.Props.SetText(ical.PropLocation, v.Location())
		}
		if v.Description() != "" {
			ve.Props.SetText(ical.PropDescription, v.Description())
		}
	case *model.TimeEvent:
		start := v.StartDateTime()
		end := v.EndDateTime()
		if start == nil || end == nil {
			return nil
		}
		ve.Props.SetText(ical.PropSummary, v.Title())
		ve.Props.SetDateTime(ical.PropDateTimeStart, *start)
		ve.Props.SetDateTime(ical.PropDateTimeEnd, *end)
		if v.Location() != "" {
			ve.Props.SetText(ical.PropLocation, v.Location())
		}
		if v.Description() != "" {
			ve.Props.SetText(ical.PropDescription, v.Description())
		}
	case *model.BusyBlock:
		if !v.HasValidTimeRange() {
			return nil
		}
		ve.Props.SetText(ical.PropSummary, "Busy")
		ve.Props.SetDateTime(ical.PropDateTimeStart, v.StartTime())
		ve.Props.SetDateTime(ical.PropDateTimeEnd, v.EndTime())
	default:
		return nil
	}
	return ve
}
