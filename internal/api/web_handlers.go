package api

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyeweb/nyeweb-server/internal/http/response"
)

func (s *Server) setupWebRoutes() {
	assetsDir := filepath.Join(s.distRoot, "assets")
	s.router.Handle("/assets/*", http.StripPrefix("/assets/",
		http.FileServer(http.Dir(assetsDir))))

	// Everything the API routes above don't claim falls through to the SPA.
	s.router.NotFound(s.handleSPA)
}

// handleSPA serves the built frontend: a matching file from the dist root,
// a .pdf extension retry, or index.html for client-side routes.
func (s *Server) handleSPA(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		response.NotFound(w, "endpoint not found", s.logger)
		return
	}

	requested, err := url.PathUnescape(r.URL.Path)
	if err != nil {
		requested = r.URL.Path
	}
	requested = strings.TrimPrefix(requested, "/")

	// Keep path traversal out of the dist root.
	clean := filepath.Clean(filepath.FromSlash(requested))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		response.NotFound(w, "not found", s.logger)
		return
	}

	if requested != "" {
		target := filepath.Join(s.distRoot, clean)
		if fileExists(target) {
			s.serveFile(w, r, target)
			return
		}

		// Book links often omit the extension.
		if !strings.HasSuffix(strings.ToLower(clean), ".pdf") {
			if pdfTarget := target + ".pdf"; fileExists(pdfTarget) {
				s.serveFile(w, r, pdfTarget)
				return
			}
		}
	}

	index := filepath.Join(s.distRoot, "index.html")
	if !fileExists(index) {
		response.NotFound(w, "frontend not built", s.logger)
		return
	}
	http.ServeFile(w, r, index)
}

// serveFile serves a single file with the markdown/PDF content types the
// frontend expects.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	case ".pdf":
		w.Header().Set("Content-Type", "application/pdf")
	}
	http.ServeFile(w, r, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
