package handlers

import (
	"net/http"

	"solarpulse/backend/services/energy-service/internal/service"
)

// NewSummaryHandler returns GET /api/energy/summary[/{client_id}].
func NewSummaryHandler(svc *service.EnergyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(w, r)
		if !ok {
			return
		}

		report, err := svc.Summarize(r.Context(), requester, r.PathValue("client_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}
