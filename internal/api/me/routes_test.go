package me_test

import (
	"net/http"
	"testing"

	"github.com/envaire/salesdesk/internal/api/apitest"
	"github.com/envaire/salesdesk/internal/api/me"
)

type meResp struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

func TestMe(t *testing.T) {
	srv := apitest.NewServer(t, me.RegisterRoutes)

	tests := []struct {
		actor   apitest.Actor
		role    string
		isAdmin bool
	}{
		{apitest.Alice, "salesman", false},
		{apitest.Admin, "admin", true},
	}
	for _, tt := range tests {
		t.Run(tt.actor.Email, func(t *testing.T) {
			resp := srv.Do(t, http.MethodGet, "/api/v1/me", tt.actor, nil)
			apitest.ExpectStatus(t, resp, http.StatusOK)
			got := apitest.Decode[meResp](t, resp)

			if got.UserID != tt.actor.ID || got.Email != tt.actor.Email {
				t.Errorf("identity = %s/%s", got.UserID, got.Email)
			}
			if got.Role != tt.role || got.IsAdmin != tt.isAdmin {
				t.Errorf("role = %s isAdmin = %v, want %s %v", got.Role, got.IsAdmin, tt.role, tt.isAdmin)
			}
		})
	}
}

func TestMeUnauthenticated(t *testing.T) {
	srv := apitest.NewServer(t, me.RegisterRoutes)

	resp := srv.Do(t, http.MethodGet, "/api/v1/me", apitest.Actor{}, nil)
	apitest.ExpectStatus(t, resp, http.StatusUnauthorized)
}
