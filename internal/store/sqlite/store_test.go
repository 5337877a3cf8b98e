package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nyeweb/nyeweb-server/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify tables exist.
	tables := []string{
		"articles", "projects", "books", "figures", "tools",
		"favorite_images", "timeline", "tags", "admins",
		"article_tags", "project_tags", "book_tags", "figure_tags", "tool_tags",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	s2.Close()
}

func TestFindOrCreateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := findOrCreateTag(ctx, s.db, "golang")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	id2, err := findOrCreateTag(ctx, s.db, "golang")
	if err != nil {
		t.Fatalf("find tag: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same tag id, got %d and %d", id1, id2)
	}

	// Names are matched exactly, so case variants are distinct tags.
	id3, err := findOrCreateTag(ctx, s.db, "Golang")
	if err != nil {
		t.Fatalf("create case-variant tag: %v", err)
	}
	if id3 == id1 {
		t.Error("expected distinct tag for case-variant name")
	}
}

func TestNormalizeTagNames(t *testing.T) {
	got := normalizeTagNames([]string{" go ", "", "web", "go", "  "})
	want := []string{"go", "web"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestClearAdminTokenMissing(t *testing.T) {
	s := newTestStore(t)

	// Clearing an unknown token is not an error.
	if err := s.ClearAdminToken(context.Background(), "no-such-token"); err != nil {
		t.Fatalf("clear missing token: %v", err)
	}
	if err := s.ClearAdminToken(context.Background(), ""); err != nil {
		t.Fatalf("clear empty token: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetArticleByID(ctx, 42); err != store.ErrNotFound {
		t.Errorf("article: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetBookByID(ctx, 42); err != store.ErrNotFound {
		t.Errorf("book: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetAdminByToken(ctx, "nope"); err != store.ErrNotFound {
		t.Errorf("admin token: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteTool(ctx, 42); err != store.ErrNotFound {
		t.Errorf("tool delete: expected ErrNotFound, got %v", err)
	}
}
