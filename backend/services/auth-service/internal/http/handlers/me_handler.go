package handlers

import (
	"errors"
	"net/http"

	"solarpulse/backend/services/auth-service/internal/repository"
	"solarpulse/backend/services/auth-service/internal/service"
)

// NewMeHandler handles GET /auth/me.
func NewMeHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := authService.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or revoked token")
			return
		}

		account, err := authService.Profile(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}

		writeJSON(w, http.StatusOK, account)
	}
}
