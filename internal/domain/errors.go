package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested object, field, association, or
// template does not exist.
var ErrNotFound = errors.New("not found")

// ErrBusy is returned when a mutation is attempted on an object that has a
// pending optimistic operation in flight.
var ErrBusy = errors.New("object has a pending mutation")

// ValidationError reports rejected input, such as a duplicate apiName or an
// unknown field type.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrityError reports a delete blocked by live associations.
// AssociationIDs identifies the blocking associations.
type ReferentialIntegrityError struct {
	ObjectID       string
	AssociationIDs []string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("object %s is referenced by associations %s",
		e.ObjectID, strings.Join(e.AssociationIDs, ", "))
}

// DuplicateError reports an association that already exists for the same
// unordered endpoint pair and cardinality.
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// PersistenceError carries the failure message from the external persistence
// collaborator. It always follows a completed rollback.
type PersistenceError struct {
	Msg string
}

func (e *PersistenceError) Error() string { return e.Msg }
