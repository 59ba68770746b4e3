package httpserver

import "net/http"

// Routes aggregates handlers for HTTP server.
type Routes struct {
	Register http.HandlerFunc
	Login    http.HandlerFunc
	Me       http.HandlerFunc
	Logout   http.HandlerFunc
	Health   http.HandlerFunc
}

// NewRouter wires all HTTP routes.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Register != nil {
		mux.Handle("POST /auth/register", routes.Register)
	}
	if routes.Login != nil {
		mux.Handle("POST /auth/login", routes.Login)
	}
	if routes.Me != nil {
		mux.Handle("GET /auth/me", routes.Me)
	}
	if routes.Logout != nil {
		mux.Handle("POST /auth/logout", routes.Logout)
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	return mux
}
