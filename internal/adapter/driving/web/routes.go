package web

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/http"
	"time"
)

// catalogFile is the embedded example catalog, served at basePath + catalogFile.
const catalogFile = "examples.json"

// RegisterRoutes registers all web GUI routes under the handler's base path.
// Static assets are served from the embedded filesystem at static/*, and the
// built-in catalog at examples.json with a content-hash ETag so loaders can
// revalidate cheaply.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	base := h.basePath

	mux.Handle("GET "+base+"static/", http.StripPrefix(base+"static/", http.FileServerFS(staticFS)))
	mux.Handle("GET "+base+catalogFile, catalogHandler(staticFS))

	// Page routes.
	mux.HandleFunc("GET "+base+"{$}", h.Preview)
	mux.HandleFunc("POST "+base+"select", requireCSRF(h.Select))
	mux.HandleFunc("POST "+base+"properties", requireCSRF(h.UpdateProperties))
	mux.HandleFunc("POST "+base+"variables", requireCSRF(h.UpdateVariables))
	mux.HandleFunc("POST "+base+"animation-steps", requireCSRF(h.UpdateAnimationSteps))
	mux.HandleFunc("POST "+base+"reset", requireCSRF(h.Reset))
}

// catalogHandler serves the embedded catalog. The file is read once; a
// missing file panics at registration since the binary is unusable without it.
func catalogHandler(staticFS fs.FS) http.Handler {
	data, err := fs.ReadFile(staticFS, catalogFile)
	if err != nil {
		panic("web: embedded catalog missing: " + err.Error())
	}
	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("ETag", etag)
		http.ServeContent(w, r, catalogFile, time.Time{}, bytes.NewReader(data))
	})
}
