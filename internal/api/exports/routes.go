package exports

import (
	"net/http"

	"schemaforge/internal/store"
)

// RegisterRoutes registers the schema export/import endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /v1/schema/export", h.Export)
	mux.HandleFunc("POST /v1/schema/import", h.Import)
}
