package objects

import (
	"net/http"

	"schemaforge/internal/coordinator"
	"schemaforge/internal/store"
)

// RegisterRoutes registers all custom object endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, coord *coordinator.Coordinator) {
	h := &Handler{store: s, coord: coord}

	mux.HandleFunc("GET /v1/objects", h.List)
	mux.HandleFunc("POST /v1/objects", h.Create)
	mux.HandleFunc("POST /v1/objects/from-template/{templateId}", h.CreateFromTemplate)
	mux.HandleFunc("GET /v1/objects/{objectId}", h.Get)
	mux.HandleFunc("PATCH /v1/objects/{objectId}", h.Update)
	mux.HandleFunc("DELETE /v1/objects/{objectId}", h.Delete)
	mux.HandleFunc("POST /v1/objects/{objectId}/duplicate", h.Duplicate)
	mux.HandleFunc("GET /v1/objects/{objectId}/associations", h.Associations)
}
