package associations

import (
	"encoding/json"
	"net/http"

	"schemaforge/internal/api"
	"schemaforge/internal/coordinator"
	"schemaforge/internal/domain"
	"schemaforge/internal/store"
)

// Handler serves the association endpoints. Reads go straight to the store;
// mutations pass through the coordinator's pending guard.
type Handler struct {
	store store.AssociationStore
	coord *coordinator.Coordinator
}

// List returns all associations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	assocs, err := h.store.List(r.Context())
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewCollectionResponse(assocs))
}

// Create adds a new association between two objects.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var input domain.CreateAssociationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if input.SourceObjectID == "" || input.TargetObjectID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"sourceObjectId and targetObjectId are required", corrID, nil))
		return
	}

	created, err := h.coord.AddAssociation(r.Context(), input)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

// Get retrieves a single association.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	associationID := r.PathValue("associationId")
	corrID := api.CorrelationID(r.Context())

	a, err := h.store.Get(r.Context(), associationID)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, a)
}

// Delete removes an association.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	associationID := r.PathValue("associationId")
	corrID := api.CorrelationID(r.Context())

	if err := h.coord.RemoveAssociation(r.Context(), associationID); err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
