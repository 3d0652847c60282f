package imports

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/csvimport"
	"github.com/envaire/salesdesk/internal/store"
)

// maxUpload caps the size of an uploaded CSV file.
const maxUpload = 10 << 20

// Handler handles import HTTP requests.
type Handler struct {
	store    *store.Store
	importer *csvimport.Importer
	activity *activity.Logger
}

// importResponse is an import run together with its result summary.
type importResponse struct {
	*store.ImportRun
	Errors []string `json:"errors"`
}

// Start handles POST /api/v1/imports. The CSV comes either as the multipart
// field "file" or as a text/csv request body.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	fileName, text, err := readUpload(w, r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID, nil))
		return
	}

	run, err := h.store.Imports.Create(r.Context(), sess.ActorID, fileName)
	if err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}

	res := h.importer.ImportCSV(r.Context(), sess.ActorID, text)

	state := store.ImportDone
	if res.Total == 0 && len(res.Errors) > 0 {
		state = store.ImportFailed
	}
	for i, msg := range res.Errors {
		if err := h.store.Imports.AddError(r.Context(), run.ID, i+1, msg); err != nil {
			api.WriteStoreError(w, r, err, "import")
			return
		}
	}
	counts := store.ImportCounts{
		Total:      res.Total,
		Imported:   res.Imported,
		Duplicates: res.Duplicates,
		Skipped:    res.Skipped,
	}
	if err := h.store.Imports.Complete(r.Context(), run.ID, state, counts); err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}

	run, err = h.store.Imports.Get(r.Context(), sess.ActorID, run.ID)
	if err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "create",
		ActionDetails: fmt.Sprintf("Imported %d of %d leads (%d duplicates)", res.Imported, res.Total, res.Duplicates),
		TargetType:    "lead",
		TargetName:    fileName,
		Metadata: map[string]any{
			"import_id":  run.ID,
			"imported":   res.Imported,
			"duplicates": res.Duplicates,
			"skipped":    res.Skipped,
		},
		UserAgent: r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusOK, importResponse{ImportRun: run, Errors: res.Errors})
}

func readUpload(w http.ResponseWriter, r *http.Request) (fileName, text string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			return "", "", errors.New("invalid multipart form data")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", "", errors.New("CSV file is required")
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, maxUpload))
		if err != nil {
			return "", "", errors.New("failed to read CSV file")
		}
		return header.Filename, string(data), nil

	case "text/csv", "text/plain":
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpload))
		if err != nil {
			return "", "", errors.New("failed to read CSV body")
		}
		return r.URL.Query().Get("fileName"), string(data), nil
	}
	return "", "", errors.New("upload a CSV file as multipart field \"file\" or a text/csv body")
}

// List handles GET /api/v1/imports.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				"limit must be a positive integer", api.CorrelationID(r.Context()), nil))
			return
		}
		limit = n
	}

	runs, err := h.store.Imports.List(r.Context(), sess.ActorID, limit)
	if err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(runs))
}

// Get handles GET /api/v1/imports/{importId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	run, err := h.store.Imports.Get(r.Context(), sess.ActorID, r.PathValue("importId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}
	api.WriteJSON(w, http.StatusOK, run)
}

// GetErrors handles GET /api/v1/imports/{importId}/errors.
func (h *Handler) GetErrors(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("importId")

	if _, err := h.store.Imports.Get(r.Context(), sess.ActorID, id); err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}

	errs, err := h.store.Imports.GetErrors(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, r, err, "import")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(errs))
}

// Template handles GET /api/v1/imports/template.
func (h *Handler) Template(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvimport.TemplateFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, strings.TrimSpace(csvimport.Template)+"\n")
}
