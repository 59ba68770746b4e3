package handlers

import (
	"net/http"

	"solarpulse/backend/services/energy-service/internal/service"
)

// NewFleetStatsHandler returns GET /api/energy/admin/stats.
func NewFleetStatsHandler(svc *service.EnergyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(w, r)
		if !ok {
			return
		}

		stats, err := svc.FleetStats(r.Context(), requester)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
