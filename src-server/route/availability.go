package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"
	"nostrcal/src-server/schedule"
	"nostrcal/src-server/utils"
)

func Availability(muxer *http.ServeMux, as *utils.AppState) {
	type GetSlotsReqBody struct {
		Address          string `json:"address"` // "31926:<pubkey>:<identifier>"
		StartDateUnixUTC int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64  `json:"endDateUnixUTC"`
	}

	type OneSlotRespBody struct {
		StartDateUnixUTC int64 `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64 `json:"endDateUnixUTC"`
	}

	type GetSlotsRespBody struct {
		Title           string            `json:"title"`
		RequiresPayment bool              `json:"requiresPayment"`
		Amount          *int64            `json:"amount,omitempty"`
		Slots           []OneSlotRespBody `json:"slots"`
	}

	type OneBlockReqBody struct {
		Day   string `json:"day"`
		Start string `json:"start"` // "HH:MM"
		End   string `json:"end"`
	}

	type CreateReqBody struct {
		PubKey          string            `json:"pubkey"`
		CalendarAddress string            `json:"calendarAddress"` // "31924:<pubkey>:<identifier>"
		Title           string            `json:"title"`
		Description     string            `json:"description"`
		TimeZone        string            `json:"tzid"`
		Duration        string            `json:"duration"` // ISO-8601, e.g. "PT30M"
		Amount          *int64            `json:"amount,omitempty"`
		Blocks          []OneBlockReqBody `json:"blocks"`
	}

	type CreateRespBody struct {
		ID      string `json:"id"`
		Address string `json:"address"`
	}

	// publish a new availability template
	muxer.HandleFunc("POST /availability/create", func(w http.ResponseWriter, r *http.Request) {
		var reqBody CreateReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		calendar := nostr.ParseAddress(reqBody.CalendarAddress)
		if calendar == nil || calendar.Kind != nostr.KindCalendar {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a calendar address"))
			return
		}
		if reqBody.PubKey == "" || reqBody.Title == "" || len(reqBody.Blocks) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a pubkey, a title and at least one schedule block"))
			return
		}

		blocks := make([]model.ScheduleBlock, 0, len(reqBody.Blocks))
		for _, block := range reqBody.Blocks {
			blocks = append(blocks, model.ScheduleBlock{
				Day:   utils.CleanupDayCode(block.Day),
				Start: block.Start,
				End:   block.End,
			})
		}
		draft := model.NewAvailabilityDraft(reqBody.PubKey, *calendar, utils.CleanupString(reqBody.Title), blocks)
		draft.SetDescription(reqBody.Description).
			SetTimeZone(reqBody.TimeZone).
			SetDuration(reqBody.Duration).
			SetAmount(reqBody.Amount)

		// the draft's backing envelope belongs to the signer from here on
		event := draft.Unsigned()
		if err := as.Signer.Sign(r.Context(), event); err != nil {
			slog.Error("can't sign availability", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't sign availability"))
			return
		}
		if err := as.Store.Save(r.Context(), event); err != nil {
			slog.Error("can't save availability", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't save availability"))
			return
		}

		respBody := CreateRespBody{ID: event.ID}
		if addr := nostr.AddressOf(event); addr != nil {
			respBody.Address = addr.String()
		}
		if err := json.NewEncoder(w).Encode(respBody); err != nil {
			slog.Error("can't encode response body", "error", err)
		}
	})

	// expand an availability template into concrete bookable slots
	muxer.HandleFunc("POST /availability/slots", func(w http.ResponseWriter, r *http.Request) {
		var reqBody GetSlotsReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		addr := nostr.ParseAddress(reqBody.Address)
		if addr == nil || addr.Kind != nostr.KindAvailability {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide an availability address"))
			return
		}
		if reqBody.StartDateUnixUTC == 0 || reqBody.EndDateUnixUTC == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a start date and end date"))
			return
		}

		event, err := as.Store.Resolve(r.Context(), *addr)
		if err != nil {
			slog.Error("can't resolve availability", "address", addr.String(), "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't resolve availability"))
			return
		}
		if event == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Availability not found"))
			return
		}
		availability := model.NewAvailability(event)

		busyEvents, err := as.Store.Query(r.Context(), nostr.Filter{
			Authors: []string{addr.PubKey},
			Kinds:   []int{nostr.KindBusyBlock},
		})
		if err != nil {
			slog.Error("can't query busy blocks", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't query busy blocks"))
			return
		}
		busy := make([]*model.BusyBlock, 0, len(busyEvents))
		for _, busyEvent := range busyEvents {
			busy = append(busy, model.NewBusyBlock(busyEvent))
		}

		slots, err := schedule.Expand(
			availability,
			busy,
			time.Unix(reqBody.StartDateUnixUTC, 0),
			time.Unix(reqBody.EndDateUnixUTC, 0),
			time.Now(),
		)
		if err != nil {
			slog.Error("can't expand availability", "address", addr.String(), "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't expand availability"))
			return
		}

		respBody := GetSlotsRespBody{
			Title:           availability.Title(),
			RequiresPayment: availability.RequiresPayment(),
			Amount:          availability.Amount(),
			Slots:           make([]OneSlotRespBody, 0, len(slots)),
		}
		for _, slot := range slots {
			respBody.Slots = append(respBody.Slots, OneSlotRespBody{
				StartDateUnixUTC: slot.Start.Unix(),
				EndDateUnixUTC:   slot.End.Unix(),
			})
		}
		if err := json.NewEncoder(w).Encode(respBody); err != nil {
			slog.Error("can't encode response body", "error", err)
		}
	})
}
