package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nostrcal/src-server/model"
	"nostrcal/src-server/utils"
)

func Busy(muxer *http.ServeMux, as *utils.AppState) {
	type QuickAddReqBody struct {
		PubKey      string `json:"pubkey"`
		Start       string `json:"start"` // natural language, e.g. "tomorrow 2pm"
		End         string `json:"end"`   // natural language, e.g. "tomorrow 4pm"
		Description string `json:"description,omitempty"`
	}

	type QuickAddRespBody struct {
		ID               string `json:"id"`
		Identifier       string `json:"identifier"`
		StartDateUnixUTC int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64  `json:"endDateUnixUTC"`
	}

	// create a busy block from natural-language start/end, sign it and
	// save it locally
	muxer.HandleFunc("POST /busy/quick-add", func(w http.ResponseWriter, r *http.Request) {
		var reqBody QuickAddReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		if reqBody.PubKey == "" || reqBody.Start == "" || reqBody.End == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a pubkey, start and end"))
			return
		}

		startResult, err := as.When.Parse(reqBody.Start, time.Now())
		if err != nil || startResult == nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse start"))
			return
		}
		endResult, err := as.When.Parse(reqBody.End, time.Now())
		if err != nil || endResult == nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Can't parse end"))
			return
		}

		draft, err := model.NewBusyBlockDraft(reqBody.PubKey, startResult.Time, endResult.Time)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			return
		}
		if reqBody.Description != "" {
			draft.SetDescription(utils.CleanupString(reqBody.Description))
		}

		// ownership of the draft envelope transfers here; no more
		// mutation past this point
		unsigned := draft.Unsigned()
		if err := as.Signer.Sign(r.Context(), unsigned); err != nil {
			slog.Error("can't sign busy block", "error", err)
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("Can't sign busy block"))
			return
		}
		if err := as.Store.Save(r.Context(), unsigned); err != nil {
			slog.Error("can't save busy block", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't save busy block"))
			return
		}

		view := model.NewBusyBlock(unsigned)
		if err := json.NewEncoder(w).Encode(QuickAddRespBody{
			ID:               unsigned.ID,
			Identifier:       view.Identifier(),
			StartDateUnixUTC: view.StartTime().Unix(),
			EndDateUnixUTC:   view.EndTime().Unix(),
		}); err != nil {
			slog.Error("can't encode response body", "error", err)
		}
	})
}
