package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func TestSPA_FallbackToIndex(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(ts.distRoot, "index.html"),
		[]byte("<html>app</html>"), 0o644))

	for _, path := range []string{"/", "/books", "/articles/notes/go"} {
		rr := ts.get(t, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "<html>app</html>", rr.Body.String(), path)
	}
}

func TestSPA_ServesMarkdownWithContentType(t *testing.T) {
	ts := setupTestServer(t)
	dir := filepath.Join(ts.distRoot, "articles", "notes")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go-notes.md"),
		[]byte("# Go Notes"), 0o644))

	rr := ts.get(t, "/articles/notes/go-notes.md")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "# Go Notes", rr.Body.String())
}

func TestSPA_PDFExtensionRetry(t *testing.T) {
	ts := setupTestServer(t)
	dir := filepath.Join(ts.distRoot, "resources", "book")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gopl.pdf"),
		[]byte("%PDF-1.4"), 0o644))

	rr := ts.get(t, "/resources/book/gopl")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
}

func TestSPA_UnknownAPIRouteIsJSON404(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(ts.distRoot, "index.html"),
		[]byte("<html>app</html>"), 0o644))

	rr := ts.get(t, "/api/no-such-endpoint")
	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
	assert.Equal(t, "endpoint not found", env.Error)
}

func TestSPA_BlocksPathTraversal(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.get(t, "/../../etc/passwd")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSPA_MissingFrontend(t *testing.T) {
	ts := setupTestServer(t)

	rr := ts.get(t, "/books")
	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "frontend not built", env.Error)
}

func TestAssetsServedFromDist(t *testing.T) {
	ts := setupTestServer(t)
	dir := filepath.Join(ts.distRoot, "assets")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"),
		[]byte("console.log('hi')"), 0o644))

	rr := ts.get(t, "/assets/app.js")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log('hi')", rr.Body.String())
}
