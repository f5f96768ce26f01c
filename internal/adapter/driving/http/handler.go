// Package httphandler implements the JSON REST API driving adapter over the
// mask settings store and the example catalog.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	store   *application.MaskStore
	catalog *application.CatalogService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(store *application.MaskStore, catalog *application.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers every API route under basePath + "api/v1/".
// basePath must start and end with "/".
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler, basePath string) {
	prefix := basePath + "api/v1/"

	mux.HandleFunc("GET "+prefix+"health", h.Health)
	mux.HandleFunc("GET "+prefix+"examples", h.ListExamples)
	mux.HandleFunc("GET "+prefix+"state", h.GetState)
	mux.HandleFunc("GET "+prefix+"state/events", h.StateEvents)
	mux.HandleFunc("PUT "+prefix+"state/example", h.SetExample)
	mux.HandleFunc("POST "+prefix+"state/example/{name...}", h.SelectExample)
	mux.HandleFunc("PATCH "+prefix+"state/properties", h.SetMaskProperties)
	mux.HandleFunc("PUT "+prefix+"state/variables", h.SetVariables)
	mux.HandleFunc("PUT "+prefix+"state/animation-steps", h.SetAnimationSteps)
	mux.HandleFunc("POST "+prefix+"state/reset", h.Reset)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, basePath string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h, basePath)
	return ApplyMiddleware(mux, logger)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListExamples loads the example catalog.
func (h *Handler) ListExamples(w http.ResponseWriter, r *http.Request) {
	examples, err := h.catalog.Examples(r.Context())
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	resp := make([]MaskSettingsResponse, 0, len(examples))
	for _, ex := range examples {
		resp = append(resp, toMaskSettingsResponse(ex))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetState returns the selected example and the working copy.
func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// SetExample replaces both the selected example and the working copy with
// the settings in the request body.
func (h *Handler) SetExample(w http.ResponseWriter, r *http.Request) {
	var req model.MaskSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetExample(req)
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// SelectExample looks up a catalog example by name and selects it. The name
// is the rest of the path, so names containing a slash can be selected.
func (h *Handler) SelectExample(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if _, err := h.catalog.Select(r.Context(), h.store, name); err != nil {
		if errors.Is(err, application.ErrExampleNotFound) {
			writeError(w, http.StatusNotFound, "example not found")
			return
		}
		h.writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// SetMaskProperties merges the CSS fields present in the body into the
// working copy. Absent and null fields are left untouched.
func (h *Handler) SetMaskProperties(w http.ResponseWriter, r *http.Request) {
	var req model.MaskProperties
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetMaskProperties(req)
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// SetVariables replaces the working copy's variables with the body array.
func (h *Handler) SetVariables(w http.ResponseWriter, r *http.Request) {
	var req []string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetVariables(req)
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// SetAnimationSteps replaces the working copy's animation steps with the body array.
func (h *Handler) SetAnimationSteps(w http.ResponseWriter, r *http.Request) {
	var req []model.AnimationStep
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetAnimationSteps(req)
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// Reset copies the selected example back over the working copy.
func (h *Handler) Reset(w http.ResponseWriter, _ *http.Request) {
	h.store.ResetToExample()
	writeJSON(w, http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// writeCatalogError maps loader failures to 502 and anything else to 500.
func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	var fetchErr *driven.FetchError
	var parseErr *driven.ParseError

	switch {
	case errors.As(err, &fetchErr):
		h.logger.Error("failed to fetch examples", "url", fetchErr.URL, "status", fetchErr.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "example catalog unavailable")
	case errors.As(err, &parseErr):
		h.logger.Error("failed to parse examples", "url", parseErr.URL, "error", err)
		writeError(w, http.StatusBadGateway, "example catalog is not valid JSON")
	default:
		h.logger.Error("failed to load examples", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
