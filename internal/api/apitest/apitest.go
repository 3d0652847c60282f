// Package apitest runs API routes behind the production middleware chain for
// handler tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/role"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

// Actor is the identity a test request is made as.
type Actor struct {
	ID    string
	Email string
}

// Common test actors. Admin is on the allowlist passed by NewServer.
var (
	Alice = Actor{ID: "user-alice", Email: "alice@example.com"}
	Bob   = Actor{ID: "user-bob", Email: "bob@example.com"}
	Admin = Actor{ID: "user-admin", Email: "admin@example.com"}
)

// Server is a test server backed by a migrated in-memory database.
type Server struct {
	*httptest.Server
	Store *store.Store
}

// NewServer registers routes on a fresh mux and serves it. The server is
// closed when the test completes.
func NewServer(t *testing.T, register ...func(*http.ServeMux, *store.Store)) *Server {
	t.Helper()

	s := store.New(testhelpers.NewMigratedDB(t))
	mux := http.NewServeMux()
	for _, reg := range register {
		reg(mux, s)
	}

	resolver := role.NewResolver(s.Roles, []string{Admin.Email})
	handler := api.Chain(mux,
		api.RequestID(),
		api.Recovery(),
		api.Auth("", resolver),
		api.JSONContentType(),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Server{Server: srv, Store: s}
}

// Do sends a request as actor with body encoded as JSON. A nil body sends
// no content.
func (s *Server) Do(t *testing.T, method, path string, actor Actor, body any) *http.Response {
	t.Helper()

	if body == nil {
		return s.DoRaw(t, method, path, actor, "", nil)
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return s.DoRaw(t, method, path, actor, "application/json", bytes.NewReader(data))
}

// DoRaw sends a request as actor with an arbitrary body.
func (s *Server) DoRaw(t *testing.T, method, path string, actor Actor, contentType string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, s.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if actor.ID != "" {
		req.Header.Set(api.HeaderActorID, actor.ID)
		req.Header.Set(api.HeaderActorEmail, actor.Email)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// Decode reads a JSON response body into a T.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

// ExpectStatus fails the test when resp has a different status code.
func ExpectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, body)
	}
}
