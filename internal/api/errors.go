package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/envaire/salesdesk/internal/store"
)

// Error categories.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryForbidden       = "FORBIDDEN"
	CategoryUnauthorized    = "UNAUTHORIZED"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error is the JSON error envelope.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	SubCategory   string        `json:"subCategory,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	In      string              `json:"in,omitempty"`
	Context map[string][]string `json:"context,omitempty"`
}

func newError(category, message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      category,
	}
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return newError(CategoryObjectNotFound, message, correlationID)
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	e := newError(CategoryValidationError, message, correlationID)
	e.Errors = details
	return e
}

// NewConflictError creates a 409 error with the CONFLICT category.
func NewConflictError(message, correlationID string) *Error {
	return newError(CategoryConflict, message, correlationID)
}

// NewForbiddenError creates a 403 error with the FORBIDDEN category.
func NewForbiddenError(message, correlationID string) *Error {
	return newError(CategoryForbidden, message, correlationID)
}

// NewUnauthorizedError creates a 401 error with the UNAUTHORIZED category.
func NewUnauthorizedError(message, correlationID string) *Error {
	return newError(CategoryUnauthorized, message, correlationID)
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return newError(CategoryInternalError, message, correlationID)
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}

// WriteStoreError maps a store error to a response. Unrecognized errors are
// logged and reported as 500. what names the entity for the not-found text.
func WriteStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	corrID := CorrelationID(r.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError(what+" not found", corrID))
	case errors.Is(err, store.ErrDuplicateCompany), errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusConflict, NewConflictError(err.Error(), corrID))
	case errors.Is(err, store.ErrForbidden):
		WriteError(w, http.StatusForbidden, NewForbiddenError("You can only modify your own "+what, corrID))
	default:
		slog.Error("store operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, http.StatusInternalServerError, NewInternalError("Internal Server Error", corrID))
	}
}
