package events

import "net/http"

// RegisterRoutes registers the event catalog endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux) {
	h := &Handler{}

	mux.HandleFunc("GET /v1/events", h.List)
	mux.HandleFunc("GET /v1/events/by-category", h.ByCategory)
	mux.HandleFunc("POST /v1/events/validate", h.Validate)
	mux.HandleFunc("GET /v1/events/{eventId}", h.Resolve)
}
