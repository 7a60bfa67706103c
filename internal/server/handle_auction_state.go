package server

import (
	"net/http"

	"github.com/rkcl/league-api/internal/auction"
	"github.com/rkcl/league-api/internal/league"
)

type auctionStateResponse struct {
	*league.AuctionState
	Summary map[string]league.TeamSummary `json:"summary"`
}

// handleAuctionState serves the full auction document plus derived
// per-team totals.
func handleAuctionState(svc *auction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.State(r.Context())
		if err != nil {
			writeErrorDetails(w, http.StatusInternalServerError, "Failed to load auction state", err)
			return
		}
		writeJSON(w, http.StatusOK, auctionStateResponse{
			AuctionState: st,
			Summary:      st.Summary(),
		})
	}
}
