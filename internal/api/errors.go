package api

import (
	"errors"
	"net/http"

	"schemaforge/internal/domain"
)

// Error categories surfaced in the JSON error envelope.
const (
	CategoryValidationError      = "VALIDATION_ERROR"
	CategoryObjectNotFound       = "OBJECT_NOT_FOUND"
	CategoryConflict             = "CONFLICT"
	CategoryReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	CategoryBusy                 = "BUSY"
	CategoryPersistence          = "PERSISTENCE_ERROR"
	CategoryInternal             = "INTERNAL_ERROR"
)

// Error represents a structured error response.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	In      string              `json:"in,omitempty"`
	Context map[string][]string `json:"context,omitempty"`
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryObjectNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}

// WriteDomainError maps a domain error kind to its HTTP status and category
// and writes the response. Unrecognized errors become 500 INTERNAL_ERROR.
func WriteDomainError(w http.ResponseWriter, err error, correlationID string) {
	status := http.StatusInternalServerError
	category := CategoryInternal
	var details []ErrorDetail

	var validationErr *domain.ValidationError
	var integrityErr *domain.ReferentialIntegrityError
	var duplicateErr *domain.DuplicateError
	var persistenceErr *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, category = http.StatusNotFound, CategoryObjectNotFound
	case errors.Is(err, domain.ErrBusy):
		status, category = http.StatusConflict, CategoryBusy
	case errors.As(err, &validationErr):
		status, category = http.StatusBadRequest, CategoryValidationError
	case errors.As(err, &integrityErr):
		status, category = http.StatusConflict, CategoryReferentialIntegrity
		details = []ErrorDetail{{
			Message: "remove the blocking associations first",
			Context: map[string][]string{"associationIds": integrityErr.AssociationIDs},
		}}
	case errors.As(err, &duplicateErr):
		status, category = http.StatusConflict, CategoryConflict
	case errors.As(err, &persistenceErr):
		status, category = http.StatusBadGateway, CategoryPersistence
	}

	WriteError(w, status, &Error{
		Status:        "error",
		Message:       err.Error(),
		CorrelationID: correlationID,
		Category:      category,
		Errors:        details,
	})
}
