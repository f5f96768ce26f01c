// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/maskpreview/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/maskpreview/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	store    *application.MaskStore
	catalog  *application.CatalogService
	basePath string
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. basePath must
// start and end with "/".
func NewHandler(
	store *application.MaskStore,
	catalog *application.CatalogService,
	basePath string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:    store,
		catalog:  catalog,
		basePath: basePath,
		logger:   logger,
	}
}

// Preview renders the main page. A catalog failure is shown on the page
// instead of failing the request so the working copy stays editable.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r, h.basePath)

	var loadErr string
	examples, err := h.catalog.Examples(r.Context())
	if err != nil {
		h.logger.Error("failed to load examples", "error", err)
		loadErr = describeLoadError(err)
	}

	page := toPageViewModel(examples, h.store.Snapshot(), h.basePath, token, loadErr)
	layout := templates.Layout(page.Title, h.basePath, pages.Preview(page))

	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render preview", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Select makes the named catalog example current.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")

	if _, err := h.catalog.Select(r.Context(), h.store, name); err != nil {
		if errors.Is(err, application.ErrExampleNotFound) {
			http.Error(w, "example not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to select example", "name", name, "error", err)
		http.Error(w, describeLoadError(err), http.StatusBadGateway)
		return
	}

	h.redirectHome(w, r)
}

// UpdateProperties merges the non-empty CSS fields of the form into the
// working copy.
func (h *Handler) UpdateProperties(w http.ResponseWriter, r *http.Request) {
	field := func(name string) *string {
		if v := r.PostFormValue(name); v != "" {
			return &v
		}
		return nil
	}

	h.store.SetMaskProperties(model.MaskProperties{
		MaskImage:    field("maskImage"),
		MaskSize:     field("maskSize"),
		MaskPosition: field("maskPosition"),
		MaskRepeat:   field("maskRepeat"),
		MaskMode:     field("maskMode"),
	})

	h.redirectHome(w, r)
}

// UpdateVariables replaces the working copy's variables with the textarea lines.
func (h *Handler) UpdateVariables(w http.ResponseWriter, r *http.Request) {
	h.store.SetVariables(parseVariables(r.PostFormValue("variables")))
	h.redirectHome(w, r)
}

// UpdateAnimationSteps replaces the working copy's animation steps with the
// parsed textarea.
func (h *Handler) UpdateAnimationSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := parseSteps(r.PostFormValue("steps"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.store.SetAnimationSteps(steps)
	h.redirectHome(w, r)
}

// Reset discards edits to the working copy.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.ResetToExample()
	h.redirectHome(w, r)
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.basePath, http.StatusSeeOther)
}

// describeLoadError returns a user-facing message for a catalog failure.
func describeLoadError(err error) string {
	var fetchErr *driven.FetchError
	var parseErr *driven.ParseError

	switch {
	case errors.As(err, &fetchErr):
		return "Could not load examples: " + fetchErr.Error()
	case errors.As(err, &parseErr):
		return "Examples file is not valid JSON."
	default:
		return "Could not load examples."
	}
}
