package handlers

import (
	"net/http"

	"solarpulse/backend/services/auth-service/internal/service"
)

// NewLogoutHandler handles POST /auth/logout.
func NewLogoutHandler(authService *service.AuthService) http.HandlerFunc {
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

		if err := authService.Logout(r.Context(), claims.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to logout")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
