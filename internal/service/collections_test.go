package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
)

func TestBookService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.books.Create(ctx, CreateBookInput{
		Title:       "The Go Programming Language",
		Description: "reference",
		Cover:       "/covers/gopl.jpg",
		Filename:    "gopl.pdf",
		Status:      "published",
		Tags:        []string{"go"},
	})
	require.NoError(t, err)

	got, err := env.books.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "gopl.pdf", got.Filename)

	newDesc := "the reference"
	updated, err := env.books.Update(ctx, b.ID, UpdateBookInput{Description: &newDesc, Tags: []string{"go", "books"}})
	require.NoError(t, err)
	assert.Equal(t, "the reference", updated.Description)
	assert.Equal(t, []string{"go", "books"}, updated.Tags)

	public, err := env.books.List(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)

	status, err := env.books.UpdateStatus(ctx, b.ID, "recycled")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecycled, status)

	public, err = env.books.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, env.books.Delete(ctx, b.ID))
	_, err = env.books.Get(ctx, b.ID)
	assertErrorCode(t, err, domainerrors.CodeNotFound)
}

func TestFigureService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	f, err := env.figures.Create(ctx, CreateFigureInput{
		Title:    "Architecture Diagram",
		Filename: "arch.png",
		Status:   "published",
	})
	require.NoError(t, err)

	public, err := env.figures.List(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, f.ID, public[0].ID)

	_, err = env.figures.Create(ctx, CreateFigureInput{Title: "Bad", Status: "unknown"})
	assertErrorCode(t, err, domainerrors.CodeValidation)
}

func TestToolService_URLValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tools.Create(ctx, CreateToolInput{Title: "Bad", URL: "not-a-url"})
	assertErrorCode(t, err, domainerrors.CodeValidation)

	_, err = env.tools.Create(ctx, CreateToolInput{Title: "Bad", URL: "ftp://example.com"})
	assertErrorCode(t, err, domainerrors.CodeValidation)

	tool, err := env.tools.Create(ctx, CreateToolInput{
		Title:  "Excalidraw",
		URL:    "https://excalidraw.com",
		Status: "published",
	})
	require.NoError(t, err)

	badURL := "nope"
	_, err = env.tools.Update(ctx, tool.ID, UpdateToolInput{URL: &badURL})
	assertErrorCode(t, err, domainerrors.CodeValidation)

	goodURL := "https://excalidraw.com/about"
	updated, err := env.tools.Update(ctx, tool.ID, UpdateToolInput{URL: &goodURL})
	require.NoError(t, err)
	assert.Equal(t, goodURL, updated.URL)
}

func TestFavoriteImageService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	img, err := env.favorites.Create(ctx, "sunset.jpg")
	require.NoError(t, err)

	list, err := env.favorites.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sunset.jpg", list[0].Filename)

	require.NoError(t, env.favorites.Delete(ctx, img.ID))
	err = env.favorites.Delete(ctx, img.ID)
	assertErrorCode(t, err, domainerrors.CodeNotFound)
}

func TestTimelineService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e, err := env.timeline.Create(ctx, "2024-03-15 10:30:00", "shipped the redesign")
	require.NoError(t, err)

	_, err = env.timeline.Create(ctx, "last tuesday", "nope")
	assertErrorCode(t, err, domainerrors.CodeValidation)

	newContent := "shipped the redesign, finally"
	updated, err := env.timeline.Update(ctx, e.ID, nil, &newContent)
	require.NoError(t, err)
	assert.Equal(t, newContent, updated.Content)
	assert.Equal(t, e.Timestamp, updated.Timestamp)

	list, err := env.timeline.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, env.timeline.Delete(ctx, e.ID))
	err = env.timeline.Delete(ctx, e.ID)
	assertErrorCode(t, err, domainerrors.CodeNotFound)
}
