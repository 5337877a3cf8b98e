package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

func TestArticleLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Article{
		Title:    "Hello World",
		Slug:     "hello-world",
		Category: "notes",
		Summary:  "first post",
		Date:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:   domain.StatusDraft,
	}
	if err := s.CreateArticle(ctx, a, []string{"go", "web"}); err != nil {
		t.Fatalf("create article: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := s.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if got.Title != "Hello World" || got.Category != "notes" {
		t.Errorf("unexpected article: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "web" {
		t.Errorf("expected tags [go web], got %v", got.Tags)
	}
	if !got.Date.Equal(a.Date) {
		t.Errorf("expected date %v, got %v", a.Date, got.Date)
	}

	bySlug, err := s.GetArticleBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != a.ID {
		t.Errorf("expected id %d, got %d", a.ID, bySlug.ID)
	}

	byCat, err := s.GetArticleByCategoryAndSlug(ctx, "notes", "hello-world")
	if err != nil {
		t.Fatalf("get by category and slug: %v", err)
	}
	if byCat.ID != a.ID {
		t.Errorf("expected id %d, got %d", a.ID, byCat.ID)
	}
	if _, err := s.GetArticleByCategoryAndSlug(ctx, "other", "hello-world"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for wrong category, got %v", err)
	}

	a.Title = "Hello Again"
	a.Status = domain.StatusPublished
	if err := s.UpdateArticle(ctx, a, []string{"go"}); err != nil {
		t.Fatalf("update article: %v", err)
	}
	got, err = s.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Title != "Hello Again" || got.Status != domain.StatusPublished {
		t.Errorf("unexpected article after update: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "go" {
		t.Errorf("expected tags [go], got %v", got.Tags)
	}

	if err := s.DeleteArticle(ctx, a.ID); err != nil {
		t.Fatalf("delete article: %v", err)
	}
	if _, err := s.GetArticleByID(ctx, a.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteArticle(ctx, a.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateArticleSlugCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.Article{Title: "Go Notes", Slug: "go-notes"}
	if err := s.CreateArticle(ctx, first, nil); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := &domain.Article{Title: "Go Notes", Slug: "go-notes"}
	if err := s.CreateArticle(ctx, second, nil); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug != "go-notes-1" {
		t.Errorf("expected slug go-notes-1, got %s", second.Slug)
	}
	third := &domain.Article{Title: "Go Notes", Slug: "go-notes"}
	if err := s.CreateArticle(ctx, third, nil); err != nil {
		t.Fatalf("create third: %v", err)
	}
	if third.Slug != "go-notes-2" {
		t.Errorf("expected slug go-notes-2, got %s", third.Slug)
	}
}

func TestListArticlesPublishedOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &domain.Article{
		Title:  "Older",
		Slug:   "older",
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusPublished,
	}
	newer := &domain.Article{
		Title:  "Newer",
		Slug:   "newer",
		Date:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusPublished,
	}
	draft := &domain.Article{Title: "Draft", Slug: "draft", Status: domain.StatusDraft}
	recycled := &domain.Article{Title: "Gone", Slug: "gone", Status: domain.StatusRecycled}
	for _, a := range []*domain.Article{older, newer, draft, recycled} {
		if err := s.CreateArticle(ctx, a, nil); err != nil {
			t.Fatalf("create %s: %v", a.Slug, err)
		}
	}

	public, err := s.ListArticles(ctx, true)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("expected 2 published articles, got %d", len(public))
	}
	if public[0].Slug != "newer" || public[1].Slug != "older" {
		t.Errorf("expected newest-first order, got %s then %s", public[0].Slug, public[1].Slug)
	}

	all, err := s.ListArticles(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 articles, got %d", len(all))
	}
}

func TestArticleTagCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1 := &domain.Article{Title: "One", Slug: "one", Status: domain.StatusPublished}
	a2 := &domain.Article{Title: "Two", Slug: "two", Status: domain.StatusPublished}
	draft := &domain.Article{Title: "Hidden", Slug: "hidden", Status: domain.StatusDraft}
	if err := s.CreateArticle(ctx, a1, []string{"go", "web"}); err != nil {
		t.Fatalf("create one: %v", err)
	}
	if err := s.CreateArticle(ctx, a2, []string{"go"}); err != nil {
		t.Fatalf("create two: %v", err)
	}
	if err := s.CreateArticle(ctx, draft, []string{"go", "secret"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	counts, err := s.ArticleTagCounts(ctx)
	if err != nil {
		t.Fatalf("tag counts: %v", err)
	}
	if len(counts.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", counts.Tags)
	}
	if counts.Counts["go"] != 2 {
		t.Errorf("expected go count 2, got %d", counts.Counts["go"])
	}
	if counts.Counts["web"] != 1 {
		t.Errorf("expected web count 1, got %d", counts.Counts["web"])
	}
	if _, ok := counts.Counts["secret"]; ok {
		t.Error("expected draft-only tag to be excluded")
	}
}

func TestUpdateArticleTagsUntouchedWhenNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Article{Title: "Keep Tags", Slug: "keep-tags"}
	if err := s.CreateArticle(ctx, a, []string{"go"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	a.Summary = "updated"
	if err := s.UpdateArticle(ctx, a, nil); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "go" {
		t.Errorf("expected tags preserved, got %v", got.Tags)
	}
}

func TestUpdateArticleStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Article{Title: "Status", Slug: "status"}
	if err := s.CreateArticle(ctx, a, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.UpdateArticleStatus(ctx, a.ID, domain.StatusRecycled); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, err := s.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusRecycled {
		t.Errorf("expected recycled, got %v", got.Status)
	}

	if err := s.UpdateArticleStatus(ctx, 9999, domain.StatusDraft); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
