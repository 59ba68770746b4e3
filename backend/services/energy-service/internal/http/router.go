package httpserver

import "net/http"

// Routes defines HTTP endpoints.
type Routes struct {
	Realtime   http.Handler
	History    http.Handler
	Summary    http.Handler
	Ingest     http.Handler
	FleetStats http.Handler
	Live       http.Handler
	Health     http.Handler
}

// NewRouter sets up HTTP routing. Every telemetry endpoint is wrapped
// by authMiddleware; the health probe stays open.
func NewRouter(routes Routes, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	protect := func(h http.Handler) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	if routes.Realtime != nil {
		mux.Handle("GET /api/energy/realtime", protect(routes.Realtime))
		mux.Handle("GET /api/energy/realtime/{client_id}", protect(routes.Realtime))
	}
	if routes.History != nil {
		mux.Handle("GET /api/energy/history", protect(routes.History))
		mux.Handle("GET /api/energy/history/{client_id}", protect(routes.History))
	}
	if routes.Summary != nil {
		mux.Handle("GET /api/energy/summary", protect(routes.Summary))
		mux.Handle("GET /api/energy/summary/{client_id}", protect(routes.Summary))
	}
	if routes.Ingest != nil {
		mux.Handle("POST /api/energy/data", protect(routes.Ingest))
	}
	if routes.FleetStats != nil {
		mux.Handle("GET /api/energy/admin/stats", protect(routes.FleetStats))
	}
	if routes.Live != nil {
		mux.Handle("GET /api/energy/live/{client_id}", protect(routes.Live))
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	return mux
}
