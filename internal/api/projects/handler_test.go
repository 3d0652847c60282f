package projects_test

import (
	"net/http"
	"testing"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/api/apitest"
	"github.com/envaire/salesdesk/internal/api/projects"
)

type projectResp struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Title             string `json:"title"`
	Company           string `json:"company"`
	ExpectedCloseDate string `json:"expectedCloseDate"`
}

func createProject(t *testing.T, srv *apitest.Server, actor apitest.Actor, title string) projectResp {
	t.Helper()
	resp := srv.Do(t, http.MethodPost, "/api/v1/projects", actor, map[string]any{
		"title":             title,
		"company":           "Acme",
		"description":       "Rollout",
		"expectedCloseDate": "2025-06-30",
	})
	apitest.ExpectStatus(t, resp, http.StatusCreated)
	return apitest.Decode[projectResp](t, resp)
}

func TestProjectLifecycle(t *testing.T) {
	srv := apitest.NewServer(t, projects.RegisterRoutes)

	p := createProject(t, srv, apitest.Alice, "Pilot")
	if p.ExpectedCloseDate != "2025-06-30" {
		t.Errorf("expectedCloseDate = %q", p.ExpectedCloseDate)
	}

	// Projects are visible to and editable by every actor.
	resp := srv.Do(t, http.MethodPatch, "/api/v1/projects/"+p.ID, apitest.Bob, map[string]any{
		"title":             "Pilot v2",
		"company":           "Acme",
		"description":       "Rollout",
		"expectedCloseDate": "2025-07-31",
	})
	apitest.ExpectStatus(t, resp, http.StatusOK)
	if got := apitest.Decode[projectResp](t, resp); got.Title != "Pilot v2" || got.UserID != apitest.Alice.ID {
		t.Errorf("unexpected update %+v", got)
	}

	resp = srv.Do(t, http.MethodDelete, "/api/v1/projects/"+p.ID, apitest.Bob, nil)
	apitest.ExpectStatus(t, resp, http.StatusNoContent)

	resp = srv.Do(t, http.MethodGet, "/api/v1/projects/"+p.ID, apitest.Alice, nil)
	apitest.ExpectStatus(t, resp, http.StatusNotFound)
}

func TestProjectValidation(t *testing.T) {
	srv := apitest.NewServer(t, projects.RegisterRoutes)

	resp := srv.Do(t, http.MethodPost, "/api/v1/projects", apitest.Alice, map[string]any{"title": "Only title"})
	apitest.ExpectStatus(t, resp, http.StatusBadRequest)

	e := apitest.Decode[api.Error](t, resp)
	if len(e.Errors) != 3 {
		t.Errorf("expected 3 missing fields, got %+v", e.Errors)
	}
}

func TestProjectBulkDelete(t *testing.T) {
	srv := apitest.NewServer(t, projects.RegisterRoutes)

	a := createProject(t, srv, apitest.Alice, "A")
	createProject(t, srv, apitest.Bob, "B")
	createProject(t, srv, apitest.Bob, "C")

	resp := srv.Do(t, http.MethodPost, "/api/v1/projects/delete", apitest.Alice, map[string]any{"ids": []string{a.ID}})
	apitest.ExpectStatus(t, resp, http.StatusOK)
	if n := apitest.Decode[api.DeletedResponse](t, resp).Deleted; n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	resp = srv.Do(t, http.MethodDelete, "/api/v1/projects", apitest.Alice, nil)
	apitest.ExpectStatus(t, resp, http.StatusOK)
	if n := apitest.Decode[api.DeletedResponse](t, resp).Deleted; n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	resp = srv.Do(t, http.MethodGet, "/api/v1/projects", apitest.Alice, nil)
	apitest.ExpectStatus(t, resp, http.StatusOK)
	if list := apitest.Decode[api.CollectionResponse[projectResp]](t, resp); list.Total != 0 {
		t.Errorf("expected empty list, got %d", list.Total)
	}
}
