package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/rkcl/league-api/internal/auction"
	"github.com/rkcl/league-api/internal/league"
)

type auctionActionResponse struct {
	OK    bool                 `json:"ok"`
	State *league.AuctionState `json:"state"`
}

// handleAuctionAction applies one auction action and broadcasts the
// change to live viewers.
func handleAuctionAction(svc *auction.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auction.Request
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		st, err := svc.Apply(r.Context(), req)
		if err != nil {
			var actionErr *auction.Error
			if errors.As(err, &actionErr) {
				writeError(w, statusForAuctionCode(actionErr.Code), actionErr.Message)
				return
			}
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to update auction state", err)
			return
		}

		broker.Publish(StateEvent{
			Action: req.Action,
			Player: req.FullName,
			Team:   req.Team,
			Time:   time.Now().UTC().Format(time.RFC3339),
		})
		writeJSON(w, http.StatusOK, auctionActionResponse{OK: true, State: st})
	}
}

func statusForAuctionCode(code auction.Code) int {
	switch code {
	case auction.CodeNotFound:
		return http.StatusNotFound
	case auction.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
