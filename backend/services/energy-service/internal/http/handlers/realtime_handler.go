package handlers

import (
	"net/http"

	"solarpulse/backend/services/energy-service/internal/service"
)

// NewRealtimeHandler returns GET /api/energy/realtime[/{client_id}].
func NewRealtimeHandler(svc *service.EnergyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(w, r)
		if !ok {
			return
		}

		sample, err := svc.Realtime(r.Context(), requester, r.PathValue("client_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sample)
	}
}
