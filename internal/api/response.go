package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// DecodeJSON reads a JSON request body into v. Unknown fields are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// CollectionResponse is a list response.
type CollectionResponse[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total"`
}

// NewCollection wraps items in a CollectionResponse. A nil slice is
// rendered as an empty array.
func NewCollection[T any](items []T) CollectionResponse[T] {
	if items == nil {
		items = []T{}
	}
	return CollectionResponse[T]{Results: items, Total: len(items)}
}

// DeletedResponse reports how many rows a bulk delete removed.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}
