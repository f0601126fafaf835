package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "index.html"

// StaticHandler serves the built web client from a directory. Unknown
// extension-less paths get index.html so client-side routes survive a
// reload; a missing asset is a JSON 404.
type StaticHandler struct {
	root  string
	files http.Handler
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{
		root:  root,
		files: http.FileServer(http.Dir(root)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		MethodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" {
		info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(clean)))
		if err == nil && !info.IsDir() {
			h.files.ServeHTTP(w, r)
			return
		}
		if path.Ext(clean) != "" {
			WriteError(w, http.StatusNotFound, CodeNotFound, "asset not found")
			return
		}
	}

	f, err := os.Open(filepath.Join(h.root, indexFile))
	if errors.Is(err, fs.ErrNotExist) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "web client is not installed")
		return
	}
	if err != nil {
		slog.Error("failed to open index", "error", err)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Error("failed to stat index", "error", err)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, indexFile, info.ModTime(), f)
}
