package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/store"
)

func TestNewNotFoundError(t *testing.T) {
	err := api.NewNotFoundError("lead not found", "abc-123")

	if err.Status != "error" {
		t.Errorf("Status = %q, want %q", err.Status, "error")
	}
	if err.Category != api.CategoryObjectNotFound {
		t.Errorf("Category = %q, want %q", err.Category, api.CategoryObjectNotFound)
	}
	if err.CorrelationID != "abc-123" {
		t.Errorf("CorrelationID = %q, want %q", err.CorrelationID, "abc-123")
	}
	if err.Message != "lead not found" {
		t.Errorf("Message = %q, want %q", err.Message, "lead not found")
	}
}

func TestNewValidationError(t *testing.T) {
	details := []api.ErrorDetail{
		{Message: "company is required", Code: "REQUIRED", In: "company"},
	}
	err := api.NewValidationError("invalid input", "def-456", details)

	if err.Category != api.CategoryValidationError {
		t.Errorf("Category = %q, want %q", err.Category, api.CategoryValidationError)
	}
	if len(err.Errors) != 1 {
		t.Fatalf("Errors length = %d, want 1", len(err.Errors))
	}
	if err.Errors[0].Code != "REQUIRED" {
		t.Errorf("Errors[0].Code = %q, want %q", err.Errors[0].Code, "REQUIRED")
	}
}

func TestErrorCategories(t *testing.T) {
	cases := map[string]*api.Error{
		api.CategoryConflict:      api.NewConflictError("exists", "x"),
		api.CategoryForbidden:     api.NewForbiddenError("no", "x"),
		api.CategoryUnauthorized:  api.NewUnauthorizedError("who", "x"),
		api.CategoryInternalError: api.NewInternalError("oops", "x"),
	}
	for want, err := range cases {
		if err.Category != want {
			t.Errorf("Category = %q, want %q", err.Category, want)
		}
	}
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	apiErr := api.NewNotFoundError("not found", "test-id")

	api.WriteError(rec, http.StatusNotFound, apiErr)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var result api.Error
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if result.CorrelationID != "test-id" {
		t.Errorf("correlationId = %q, want %q", result.CorrelationID, "test-id")
	}
}

func TestWriteStoreError(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		category string
	}{
		{store.ErrNotFound, http.StatusNotFound, api.CategoryObjectNotFound},
		{fmt.Errorf("%w: %q", store.ErrDuplicateCompany, "Acme"), http.StatusConflict, api.CategoryConflict},
		{store.ErrConflict, http.StatusConflict, api.CategoryConflict},
		{store.ErrForbidden, http.StatusForbidden, api.CategoryForbidden},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError, api.CategoryInternalError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/x", http.NoBody)
		api.WriteStoreError(rec, req, tt.err, "lead")

		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		var result api.Error
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Category != tt.category {
			t.Errorf("%v: category = %q, want %q", tt.err, result.Category, tt.category)
		}
	}
}
