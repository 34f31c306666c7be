package templates

import (
	"fmt"
	"net/http"

	"schemaforge/internal/api"
	"schemaforge/internal/catalog"
	"schemaforge/internal/domain"
)

// Handler serves the static template catalog endpoints.
type Handler struct{}

// List returns the full template catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, api.NewCollectionResponse(catalog.Templates()))
}

// Get retrieves a single template by ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateId")
	corrID := api.CorrelationID(r.Context())

	tpl, ok := catalog.FindTemplate(templateID)
	if !ok {
		api.WriteDomainError(w, fmt.Errorf("template %q: %w", templateID, domain.ErrNotFound), corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, tpl)
}
