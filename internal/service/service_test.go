package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/store"
	"github.com/nyeweb/nyeweb-server/internal/store/sqlite"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

// testEnv wires the services against a throwaway sqlite database and
// temporary static roots.
type testEnv struct {
	store      store.Store
	distRoot   string
	publicRoot string

	articles  *ArticleService
	projects  *ProjectService
	books     *BookService
	figures   *FigureService
	tools     *ToolService
	favorites *FavoriteImageService
	timeline  *TimelineService
	auth      *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	distRoot := filepath.Join(dir, "dist")
	publicRoot := filepath.Join(dir, "public")
	m := mirror.New(distRoot, publicRoot)

	cache, err := category.NewCache(category.NewScanner(distRoot), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	validate := validation.New()

	return &testEnv{
		store:      st,
		distRoot:   distRoot,
		publicRoot: publicRoot,
		articles:   NewArticleService(st, m, cache, logger),
		projects:   NewProjectService(st, m, cache, logger),
		books:      NewBookService(st, logger),
		figures:    NewFigureService(st, logger),
		tools:      NewToolService(st, validate, logger),
		favorites:  NewFavoriteImageService(st, logger),
		timeline:   NewTimelineService(st, logger),
		auth:       NewAuthService(st, logger),
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("")
	require.NoError(t, err)
	assert.False(t, d.IsZero())

	_, err = parseDate("15/03/2024")
	assert.Error(t, err)
	_, err = parseDate("2024-13-01")
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("2024-03-15 10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), ts)

	ts, err = parseTimestamp("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)

	_, err = parseTimestamp("2024-03-15T10:30:00Z")
	assert.Error(t, err)
}
