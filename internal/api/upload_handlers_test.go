package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSanitizeFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"ascii", "my book.pdf", "my_book_20240315_103000.pdf"},
		{"cjk preserved", "深入理解计算机系统.pdf", "深入理解计算机系统_20240315_103000.pdf"},
		{"special chars collapsed", "a//b??c.pdf", "a_b_c_20240315_103000.pdf"},
		{"hyphens kept", "go-notes.pdf", "go-notes_20240315_103000.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.original, now))
		})
	}

	// A name with no usable characters still produces something unique.
	got := sanitizeFilename("???.pdf", now)
	assert.NotEqual(t, "_20240315_103000.pdf", got)
	assert.Contains(t, got, "_20240315_103000.pdf")
}

func TestBookUpload(t *testing.T) {
	ts := setupTestServer(t)

	body, contentType := multipartUpload(t, "file", "gopl.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var result map[string]string
	decodeData(t, rr, &result)
	require.NotEmpty(t, result["filename"])
	assert.Equal(t, "gopl.pdf", result["original_filename"])

	// Saved under both static roots.
	_, err := os.Stat(filepath.Join(ts.distRoot, "resources", "book", result["filename"]))
	require.NoError(t, err)
}

func TestBookUpload_RejectsNonPDF(t *testing.T) {
	ts := setupTestServer(t)

	body, contentType := multipartUpload(t, "file", "notes.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookUpload_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	body, contentType := multipartUpload(t, "file", "gopl.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/books/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestFavoriteImageUpload(t *testing.T) {
	ts := setupTestServer(t)

	body, contentType := multipartUpload(t, "file", "sunset.jpg", []byte("jpegdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/favorite-images/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var img FavoriteImageResponse
	decodeData(t, rr, &img)
	require.NotZero(t, img.ID)

	// Record is visible through the gallery listing.
	resp := ts.api.Get("/api/favorite-images")
	require.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		Images []FavoriteImageResponse `json:"images"`
	}
	decodeData(t, resp, &list)
	require.Len(t, list.Images, 1)
	assert.Equal(t, img.Filename, list.Images[0].Filename)
}
