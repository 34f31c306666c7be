package exports

import (
	"encoding/json"
	"net/http"

	"schemaforge/internal/api"
	"schemaforge/internal/store"
)

// Handler serves schema export and import.
type Handler struct {
	store *store.Store
}

// Export returns a snapshot of all objects and associations in a shape that
// Import can reconstruct.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	snap, err := h.store.ExportSchema(r.Context())
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, snap)
}

// Import reconstructs a previously exported snapshot through the regular
// creation paths.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var snap store.SchemaSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if err := h.store.ImportSchema(r.Context(), &snap); err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
