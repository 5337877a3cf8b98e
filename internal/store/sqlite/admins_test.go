package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

func TestAdminLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Admin{
		Username:     "admin",
		PasswordHash: "deadbeef",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected assigned id")
	}

	dup := &domain.Admin{Username: "admin", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	if err := s.CreateAdmin(ctx, dup); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := s.GetAdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.PasswordHash != "deadbeef" {
		t.Errorf("unexpected hash %q", got.PasswordHash)
	}
	if got.LoginToken != "" || got.LastLogin != nil {
		t.Errorf("expected fresh account without token, got %+v", got)
	}

	if err := s.SetAdminToken(ctx, a.ID, "tok-1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	byToken, err := s.GetAdminByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if byToken.ID != a.ID {
		t.Errorf("expected id %d, got %d", a.ID, byToken.ID)
	}
	if byToken.LastLogin == nil {
		t.Error("expected last_login to be recorded")
	}

	// A new login overwrites the previous token.
	if err := s.SetAdminToken(ctx, a.ID, "tok-2"); err != nil {
		t.Fatalf("set second token: %v", err)
	}
	if _, err := s.GetAdminByToken(ctx, "tok-1"); err != store.ErrNotFound {
		t.Errorf("expected old token invalid, got %v", err)
	}

	if err := s.ClearAdminToken(ctx, "tok-2"); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if _, err := s.GetAdminByToken(ctx, "tok-2"); err != store.ErrNotFound {
		t.Errorf("expected cleared token invalid, got %v", err)
	}

	if err := s.SetAdminToken(ctx, 9999, "tok-3"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown admin, got %v", err)
	}
}

func TestTimelineLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.TimelineEntry{
		Timestamp: time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		Content:   "started the rewrite",
	}
	second := &domain.TimelineEntry{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Content:   "shipped it",
	}
	if err := s.CreateTimelineEntry(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := s.CreateTimelineEntry(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	entries, err := s.ListTimeline(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Content != "shipped it" {
		t.Errorf("expected newest first, got %q", entries[0].Content)
	}

	second.Content = "shipped it, finally"
	if err := s.UpdateTimelineEntry(ctx, second); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetTimelineEntryByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "shipped it, finally" {
		t.Errorf("unexpected content %q", got.Content)
	}

	if err := s.DeleteTimelineEntry(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTimelineEntry(ctx, first.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFavoriteImages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	img := &domain.FavoriteImage{Filename: "sunset.jpg"}
	if err := s.CreateFavoriteImage(ctx, img); err != nil {
		t.Fatalf("create: %v", err)
	}

	images, err := s.ListFavoriteImages(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "sunset.jpg" {
		t.Errorf("unexpected list %+v", images)
	}

	if err := s.DeleteFavoriteImage(ctx, img.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteFavoriteImage(ctx, img.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
