package handlers

import (
	"net/http"

	"solarpulse/backend/services/energy-service/internal/service"
)

// NewHistoryHandler returns GET /api/energy/history[/{client_id}]?period=.
func NewHistoryHandler(svc *service.EnergyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(w, r)
		if !ok {
			return
		}

		samples, err := svc.History(r.Context(), requester, r.PathValue("client_id"), r.URL.Query().Get("period"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, samples)
	}
}
