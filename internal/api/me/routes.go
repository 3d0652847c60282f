// Package me serves the identity of the signed-in actor.
package me

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/session"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds GET /api/v1/me to the given mux.
func RegisterRoutes(mux *http.ServeMux, _ *store.Store) {
	mux.HandleFunc("GET /api/v1/me", Get)
}

type meResponse struct {
	session.Session
	IsAdmin bool `json:"isAdmin"`
}

// Get returns the session resolved by the auth middleware.
func Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, meResponse{Session: sess, IsAdmin: sess.IsAdmin()})
}
