package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookHandlers_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/admin/books", ts.authHeader(), map[string]any{
		"title":    "The Go Programming Language",
		"filename": "gopl_20240315_103000.pdf",
		"status":   "published",
		"tags":     []string{"go", "reference"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var book BookResponse
	decodeData(t, resp, &book)
	assert.Equal(t, "gopl_20240315_103000.pdf", book.Filename)

	resp = ts.api.Get(fmt.Sprintf("/api/books/%d", book.ID))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put(fmt.Sprintf("/api/admin/books/%d", book.ID), ts.authHeader(), map[string]any{
		"description": "K&R for Go",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &book)
	assert.Equal(t, "K&R for Go", book.Description)
	assert.Equal(t, []string{"go", "reference"}, book.Tags)

	// Recycling hides the book from public reads.
	resp = ts.api.Patch(fmt.Sprintf("/api/books/%d/status", book.ID), ts.authHeader(), map[string]any{
		"status": "recycled",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Get(fmt.Sprintf("/api/books/%d", book.ID))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete(fmt.Sprintf("/api/books/%d", book.ID), ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Delete(fmt.Sprintf("/api/books/%d", book.ID), ts.authHeader())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFigureHandlers_PublicListShowsPublishedOnly(t *testing.T) {
	ts := setupTestServer(t)

	for _, f := range []map[string]any{
		{"title": "Gopher", "filename": "gopher.png", "status": "published"},
		{"title": "WIP Sketch", "filename": "wip.png"},
	} {
		resp := ts.api.Post("/api/admin/figures", ts.authHeader(), f)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Get("/api/figures")
	require.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		Figures []FigureResponse `json:"figures"`
	}
	decodeData(t, resp, &list)
	require.Len(t, list.Figures, 1)
	assert.Equal(t, "Gopher", list.Figures[0].Title)

	resp = ts.api.Get("/api/admin/figures", ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &list)
	assert.Len(t, list.Figures, 2)
}

func TestToolHandlers_URLValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/admin/tools", ts.authHeader(), map[string]any{
		"title": "Broken",
		"url":   "not-a-url",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Post("/api/admin/tools", ts.authHeader(), map[string]any{
		"title":  "pkg.go.dev",
		"url":    "https://pkg.go.dev",
		"status": "published",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var tool ToolResponse
	decodeData(t, resp, &tool)

	resp = ts.api.Put(fmt.Sprintf("/api/admin/tools/%d", tool.ID), ts.authHeader(), map[string]any{
		"url": "ftp://example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProjectHandlers_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/projects", ts.authHeader(), map[string]any{
		"title":   "Site Builder",
		"content": "static site generator",
		"status":  "published",
		"tags":    []string{"go"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var project ProjectResponse
	decodeData(t, resp, &project)
	assert.Equal(t, "site-builder", project.Slug)

	resp = ts.api.Get("/api/projects/site-builder")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/project-tags")
	require.Equal(t, http.StatusOK, resp.Code)
	var tags TagCountsResponse
	decodeData(t, resp, &tags)
	assert.Equal(t, 1, tags.Counts["go"])
}

func TestTimelineHandlers_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/timeline", ts.authHeader(), map[string]any{
		"content":   "shipped the new reader",
		"timestamp": "2024-03-15 10:30:00",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var entry TimelineEntryResponse
	decodeData(t, resp, &entry)
	assert.Equal(t, "2024-03-15 10:30:00", entry.Timestamp)

	resp = ts.api.Put(fmt.Sprintf("/api/timeline/%d", entry.ID), ts.authHeader(), map[string]any{
		"content": "shipped the new reader, fixed a typo",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &entry)
	assert.Equal(t, "2024-03-15 10:30:00", entry.Timestamp)

	resp = ts.api.Get("/api/timeline")
	require.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		Entries []TimelineEntryResponse `json:"entries"`
	}
	decodeData(t, resp, &list)
	require.Len(t, list.Entries, 1)

	resp = ts.api.Delete(fmt.Sprintf("/api/timeline/%d", entry.ID), ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)

	// Malformed timestamps never reach the store.
	resp = ts.api.Post("/api/timeline", ts.authHeader(), map[string]any{
		"content":   "bad date",
		"timestamp": "last tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
