package objects

import (
	"encoding/json"
	"net/http"

	"schemaforge/internal/api"
	"schemaforge/internal/coordinator"
	"schemaforge/internal/domain"
	"schemaforge/internal/store"
)

// Handler serves the custom object endpoints.
type Handler struct {
	store *store.Store
	coord *coordinator.Coordinator
}

// List returns all custom objects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	objects, err := h.store.Objects.List(r.Context())
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewCollectionResponse(objects))
}

// Create adds a new custom object.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var input domain.CreateObjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	created, err := h.store.Objects.Create(r.Context(), input)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

// CreateFromTemplate instantiates a catalog template as a new custom object.
func (h *Handler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateId")
	corrID := api.CorrelationID(r.Context())

	created, err := h.store.Objects.CreateFromTemplate(r.Context(), templateID)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

// Get retrieves a single custom object.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	corrID := api.CorrelationID(r.Context())

	obj, err := h.store.Objects.Get(r.Context(), objectID)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, obj)
}

// Update partially modifies a custom object.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	corrID := api.CorrelationID(r.Context())

	var patch domain.ObjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	updated, err := h.coord.UpdateObject(r.Context(), objectID, patch)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, updated)
}

// Delete removes a custom object unless associations still reference it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	corrID := api.CorrelationID(r.Context())

	if err := h.coord.DeleteObject(r.Context(), objectID); err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Duplicate deep-copies a custom object through the optimistic
// update/rollback path.
func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	corrID := api.CorrelationID(r.Context())

	dup, err := h.coord.DuplicateObject(r.Context(), objectID)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusCreated, dup)
}

// Associations lists the associations touching a custom object.
func (h *Handler) Associations(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Objects.Get(r.Context(), objectID); err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	assocs, err := h.store.Associations.ForObject(r.Context(), objectID)
	if err != nil {
		api.WriteDomainError(w, err, corrID)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewCollectionResponse(assocs))
}
