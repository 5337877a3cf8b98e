package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/nyeweb/nyeweb-server/internal/http/response"
)

const (
	bookUploadDir     = "resources/book"
	favoriteUploadDir = "resources/favorite"

	// maxUploadSize bounds multipart uploads (32 MiB).
	maxUploadSize = 32 << 20
)

func (s *Server) setupUploadRoutes() {
	s.router.With(s.requireAuth).Post("/api/admin/books/upload", s.handleBookUpload)
	s.router.With(s.requireAuth).Post("/api/admin/favorite-images/upload", s.handleFavoriteImageUpload)
}

// requireAuth guards the plain (non-huma) admin handlers with the same
// bearer token check the huma operations use.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			response.Unauthorized(w, "missing or malformed authorization header", s.logger)
			return
		}
		if _, err := s.services.Auth.Verify(r.Context(), token); err != nil {
			response.Unauthorized(w, "invalid or expired token", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// unsafeFilenameChars matches everything that is not a letter (CJK
// included), digit, underscore, or hyphen.
var (
	unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)
	underscoreRuns      = regexp.MustCompile(`_+`)
)

// sanitizeFilename produces a unique on-disk name from an uploaded one,
// keeping CJK and word characters readable and appending a timestamp.
func sanitizeFilename(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)

	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	safe = strings.Trim(underscoreRuns.ReplaceAllString(safe, "_"), "_")
	if safe == "" {
		safe, _ = gonanoid.New(8)
	}

	return safe + "_" + now.Format("20060102_150405") + ext
}

// saveUpload writes the uploaded content under relDir in both static roots.
func (s *Server) saveUpload(relDir, filename string, content []byte) error {
	for _, root := range []string{s.distRoot, s.publicRoot} {
		dir := filepath.Join(root, filepath.FromSlash(relDir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, filename), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// readUploadFile pulls the "file" part out of a multipart request.
func (s *Server) readUploadFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "invalid multipart form", s.logger)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing file field", s.logger)
		return "", nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("failed to read uploaded file", "error", err)
		response.InternalError(w, "failed to read uploaded file", s.logger)
		return "", nil, false
	}

	return header.Filename, content, true
}

// handleBookUpload stores an uploaded PDF under resources/book in both
// static roots and returns the generated filename.
// POST /api/admin/books/upload
func (s *Server) handleBookUpload(w http.ResponseWriter, r *http.Request) {
	original, content, ok := s.readUploadFile(w, r)
	if !ok {
		return
	}

	if !strings.EqualFold(filepath.Ext(original), ".pdf") {
		response.BadRequest(w, "only PDF files are accepted", s.logger)
		return
	}

	filename := sanitizeFilename(original, time.Now())
	if err := s.saveUpload(bookUploadDir, filename, content); err != nil {
		s.logger.Error("failed to save book upload", "filename", filename, "error", err)
		response.InternalError(w, "failed to save uploaded file", s.logger)
		return
	}

	s.logger.Info("book file uploaded", "filename", filename, "original", original)
	response.Created(w, map[string]string{
		"filename":          filename,
		"original_filename": original,
	}, s.logger)
}

// handleFavoriteImageUpload stores an uploaded image under
// resources/favorite in both static roots and records it in the gallery.
// POST /api/admin/favorite-images/upload
func (s *Server) handleFavoriteImageUpload(w http.ResponseWriter, r *http.Request) {
	original, content, ok := s.readUploadFile(w, r)
	if !ok {
		return
	}

	switch strings.ToLower(filepath.Ext(original)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		response.BadRequest(w, "unsupported image format", s.logger)
		return
	}

	filename := sanitizeFilename(original, time.Now())
	if err := s.saveUpload(favoriteUploadDir, filename, content); err != nil {
		s.logger.Error("failed to save image upload", "filename", filename, "error", err)
		response.InternalError(w, "failed to save uploaded file", s.logger)
		return
	}

	img, err := s.services.FavoriteImage.Create(r.Context(), filename)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, toFavoriteImageResponse(img), s.logger)
}
