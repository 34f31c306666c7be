package events

import (
	"encoding/json"
	"net/http"

	"schemaforge/internal/api"
	"schemaforge/internal/catalog"
)

// Handler serves the static event catalog endpoints.
type Handler struct{}

// List returns the full event catalog in stable order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, api.NewCollectionResponse(catalog.Events()))
}

// ByCategory returns the catalog grouped by category. All categories are
// present, including empty ones.
func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, catalog.EventsByCategory())
}

// resolvedEvent is the response shape for an identifier lookup: the catalog
// entry when one exists, otherwise just the resolved display name.
type resolvedEvent struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Catalog     bool   `json:"catalog"`
	CustomEvent bool   `json:"customEvent"`
}

// Resolve looks up an event identifier. Identifiers outside the catalog are
// not errors: valid custom event IDs get a derived display name, and
// anything else resolves to itself.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	_, inCatalog := catalog.FindEvent(eventID)
	api.WriteJSON(w, http.StatusOK, resolvedEvent{
		ID:          eventID,
		DisplayName: catalog.EventDisplayName(eventID),
		Catalog:     inCatalog,
		CustomEvent: !inCatalog && catalog.ValidCustomEventName(eventID),
	})
}

// validateRequest is the body for custom event name validation.
type validateRequest struct {
	Name string `json:"name"`
}

// validateResponse reports the validation outcome.
type validateResponse struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

// Validate checks an identifier against the portal-scoped custom event
// grammar.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	api.WriteJSON(w, http.StatusOK, validateResponse{
		Name:  req.Name,
		Valid: catalog.ValidCustomEventName(req.Name),
	})
}
