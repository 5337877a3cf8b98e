package api

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/service"
	"github.com/nyeweb/nyeweb-server/internal/store/sqlite"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api      humatest.TestAPI
	token    string
	distRoot string
}

// setupTestServer creates a server backed by a throwaway database and
// temporary static roots, with the admin account bootstrapped and logged in.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	distRoot := filepath.Join(dir, "dist")
	publicRoot := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(distRoot, 0o755))
	require.NoError(t, os.MkdirAll(publicRoot, 0o755))

	m := mirror.New(distRoot, publicRoot)
	cache, err := category.NewCache(category.NewScanner(distRoot), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	validate := validation.New()

	services := &Services{
		Article:       service.NewArticleService(st, m, cache, logger),
		Project:       service.NewProjectService(st, m, cache, logger),
		Book:          service.NewBookService(st, logger),
		Figure:        service.NewFigureService(st, logger),
		Tool:          service.NewToolService(st, validate, logger),
		FavoriteImage: service.NewFavoriteImageService(st, logger),
		Timeline:      service.NewTimelineService(st, logger),
		Auth:          service.NewAuthService(st, logger),
	}

	srv := NewServer(st, services, Options{
		DistRoot:   distRoot,
		PublicRoot: publicRoot,
	}, logger)

	ctx := context.Background()
	require.NoError(t, services.Auth.Bootstrap(ctx, "admin", "s3cret"))
	token, err := services.Auth.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	return &testServer{
		Server:   srv,
		api:      humatest.Wrap(t, srv.api),
		token:    token,
		distRoot: distRoot,
	}
}

func (ts *testServer) authHeader() string {
	return "Authorization: Bearer " + ts.token
}

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	Success bool           `json:"success"`
	Data    jsontext.Value `json:"data"`
	Error   string         `json:"error"`
	Message string         `json:"message"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success, "expected success envelope, got error %q", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, v))
}
