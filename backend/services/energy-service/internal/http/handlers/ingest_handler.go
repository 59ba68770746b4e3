package handlers

import (
	"encoding/json"
	"net/http"

	"solarpulse/backend/services/energy-service/internal/service"
)

// NewIngestHandler returns POST /api/energy/data.
func NewIngestHandler(svc *service.EnergyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(w, r)
		if !ok {
			return
		}

		var input service.IngestInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		sample, err := svc.Ingest(r.Context(), requester, input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sample)
	}
}
