// Package apperr holds the error taxonomy shared by repositories, services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("referential integrity conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type NotFoundError struct {
	Entity string
	ID     uint
}

func NotFound(entity string, id uint) error { return &NotFoundError{Entity: entity, ID: id} }

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d not found", e.Entity, e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ValidationError struct {
	Field  string
	Reason string
}

func Validation(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a delete that would orphan rows referencing the target.
type ConflictError struct {
	Entity       string
	ID           uint
	ReferencedBy string
	Count        int64
}

func (e *ConflictError) Error() string {
	if e.ReferencedBy == "" {
		return fmt.Sprintf("%s %d is still referenced", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %d is still referenced by %d %s", e.Entity, e.ID, e.Count, e.ReferencedBy)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Unavailable wraps a connection-level failure of the relational store.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// HTTPStatus maps err onto the status code handlers answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client; internals are not leaked for 5xx.
func PublicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusServiceUnavailable:
		return "store unavailable"
	case http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}
