package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"solarpulse/backend/services/energy-service/internal/access"
	"solarpulse/backend/services/energy-service/internal/auth"
	"solarpulse/backend/services/energy-service/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requesterFrom pulls the verified identity placed by the auth
// middleware. A missing identity means the route was wired without it.
func requesterFrom(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return auth.Identity{}, false
	}
	return identity, true
}

// writeServiceError maps core errors onto HTTP statuses. Denials are
// rendered identically whether or not the subject exists.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrForbidden):
		writeError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server error")
	}
}
