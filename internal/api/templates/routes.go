package templates

import "net/http"

// RegisterRoutes registers the template catalog endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux) {
	h := &Handler{}

	mux.HandleFunc("GET /v1/templates", h.List)
	mux.HandleFunc("GET /v1/templates/{templateId}", h.Get)
}
