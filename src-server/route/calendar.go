package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nostrcal/src-server/enrich"
	"nostrcal/src-server/metric"
	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
	"nostrcal/src-server/utils"
)

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	type GetEventsReqBody struct {
		PubKey           string `json:"pubkey"`
		StartDateUnixUTC int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64  `json:"endDateUnixUTC"`
	}

	type OneEventRespBody struct {
		ID               string `json:"id"`
		Kind             int    `json:"kind"`
		Title            string `json:"title"`
		Description      string `json:"description"`
		StartDateUnixUTC int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64  `json:"endDateUnixUTC,omitempty"`
		RSVPStatus       string `json:"rsvpStatus,omitempty"`
		ParentID         string `json:"parentId,omitempty"`
	}

	// get one author's enriched events in a date range, newest first
	muxer.HandleFunc("POST /calendar/get-events", func(w http.ResponseWriter, r *http.Request) {
		var reqBody GetEventsReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		if reqBody.PubKey == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a pubkey"))
			return
		}
		if reqBody.StartDateUnixUTC == 0 || reqBody.EndDateUnixUTC == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a start date and end date"))
			return
		}
		// day membership is evaluated in the server's configured zone
		location := as.Config.GetLocation()
		startDate := time.Unix(reqBody.StartDateUnixUTC, 0).In(location)
		endDate := time.Unix(reqBody.EndDateUnixUTC, 0).In(location)

		events, err := as.Store.Query(r.Context(), nostr.Filter{
			Authors: []string{reqBody.PubKey},
			Kinds: []int{
				nostr.KindDateEvent,
				nostr.KindTimeEvent,
				nostr.KindRSVP,
				nostr.KindBusyBlock,
			},
		})
		if err != nil {
			slog.Error("can't query events", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't query events"))
			return
		}

		enricher := &enrich.Enricher{
			Resolver: as.Store,
			OnResolutionFailure: func(nostr.Address, error) {
				metric.ResolutionFailures.Inc()
			},
		}
		passStart := time.Now()
		enriched := enricher.Enrich(r.Context(), events)
		metric.EnrichmentPassMicrosec.Set(float64(time.Since(passStart).Microseconds()))
		enrich.SortByStartDesc(enriched)

		respBody := make([]OneEventRespBody, 0, len(enriched))
		for _, item := range enriched {
			start := item.StartDateTime()
			if start == nil {
				continue
			}
			inRange := false
			for day := startDate; day.Before(endDate); day = day.AddDate(0, 0, 1) {
				if item.OccursOnDay(day) {
					inRange = true
					break
				}
			}
			if !inRange {
				continue
			}

			one := OneEventRespBody{
				ID:               item.Event.ID,
				Kind:             item.Event.Kind,
				StartDateUnixUTC: start.Unix(),
			}
			if end := item.EndDateTime(); end != nil {
				one.EndDateUnixUTC = end.Unix()
			}
			if item.IsRSVP() {
				rsvp := model.NewRSVP(item.Event)
				one.RSVPStatus = rsvp.Status()
				one.Description = rsvp.Note()
				if item.Parent != nil {
					one.ParentID = item.Parent.ID
					if view, ok := as.Registry.Decode(item.Parent); ok {
						one.Title = titleOf(view)
					}
				}
			} else if view, ok := as.Registry.Decode(item.Event); ok {
				one.Title = titleOf(view)
				one.Description = item.Event.Content
			}
			respBody = append(respBody, one)
		}

		if err := json.NewEncoder(w).Encode(respBody); err != nil {
			slog.Error("can't encode response body", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't encode response body"))
		}
	})
}

func titleOf(view model.View) string {
	switch v := view.(type) {
	case *model.DateEvent:
		return v.Title()
	case *model.TimeEvent:
		return v.Title()
	case *model.Calendar:
		return v.Title()
	case *model.Availability:
		return v.Title()
	case *model.BusyBlock:
		return "Busy"
	default:
		return ""
	}
}
