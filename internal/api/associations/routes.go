package associations

import (
	"net/http"

	"schemaforge/internal/coordinator"
	"schemaforge/internal/store"
)

// RegisterRoutes registers all association endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, coord *coordinator.Coordinator) {
	h := &Handler{store: s.Associations, coord: coord}

	mux.HandleFunc("GET /v1/associations", h.List)
	mux.HandleFunc("POST /v1/associations", h.Create)
	mux.HandleFunc("GET /v1/associations/{associationId}", h.Get)
	mux.HandleFunc("DELETE /v1/associations/{associationId}", h.Delete)
}
