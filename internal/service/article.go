package service

import (
	"context"
	"log/slog"
	"path"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/slug"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// ArticleService orchestrates the article lifecycle: slug assignment, tag
// sync, status gating, and the best-effort markdown mirror.
type ArticleService struct {
	store      store.Store
	mirror     *mirror.Mirror
	categories *category.Cache
	logger     *slog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(store store.Store, mirror *mirror.Mirror, categories *category.Cache, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		store:      store,
		mirror:     mirror,
		categories: categories,
		logger:     logger,
	}
}

// CreateArticleInput is the validated payload for creating an article.
// Slug is optional and derived from Title when empty. Status defaults to
// draft when empty; any other unrecognized label is rejected. Date defaults
// to today when empty.
type CreateArticleInput struct {
	Title    string
	Slug     string
	Category string
	Summary  string
	Content  string
	Date     string
	Status   string
	Tags     []string
}

// UpdateArticleInput is a partial update; nil fields stay untouched.
// Tags nil leaves associations alone, non-nil replaces them.
type UpdateArticleInput struct {
	Title    *string
	Category *string
	Summary  *string
	Content  *string
	Date     *string
	Status   *string
	Tags     []string
}

// List returns published articles for the public site.
func (s *ArticleService) List(ctx context.Context) ([]*domain.Article, error) {
	return s.store.ListArticles(ctx, true)
}

// ListAll returns every article regardless of status.
func (s *ArticleService) ListAll(ctx context.Context) ([]*domain.Article, error) {
	return s.store.ListArticles(ctx, false)
}

// GetBySlug returns a published article. Drafts and recycled articles are
// reported as not found.
func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	a, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		return nil, mapStoreErr(err, "article not found")
	}
	if a.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("article not found")
	}
	return a, nil
}

// GetByCategoryAndSlug returns a published article matching both values.
func (s *ArticleService) GetByCategoryAndSlug(ctx context.Context, cat, articleSlug string) (*domain.Article, error) {
	a, err := s.store.GetArticleByCategoryAndSlug(ctx, cat, articleSlug)
	if err != nil {
		return nil, mapStoreErr(err, "article not found")
	}
	if a.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("article not found")
	}
	return a, nil
}

// Create stores a new article and mirrors its markdown content.
func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (*domain.Article, error) {
	status := domain.StatusDraft
	if in.Status != "" {
		var err error
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	base := in.Slug
	if base == "" {
		base = in.Title
	}

	a := &domain.Article{
		Title:    in.Title,
		Slug:     slug.Make(base),
		Category: in.Category,
		Summary:  in.Summary,
		Date:     date,
		Status:   status,
	}
	if err := s.store.CreateArticle(ctx, a, in.Tags); err != nil {
		return nil, mapStoreErr(err, "article not found")
	}

	s.saveMirror(a, in.Content)

	s.logger.Info("article created", "id", a.ID, "slug", a.Slug, "status", a.Status.String())
	return a, nil
}

// Update applies a partial update and rewrites the mirror file when content
// is supplied.
func (s *ArticleService) Update(ctx context.Context, id int64, in UpdateArticleInput) (*domain.Article, error) {
	a, err := s.store.GetArticleByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "article not found")
	}

	oldCategory := a.Category

	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Summary != nil {
		a.Summary = *in.Summary
	}
	if in.Date != nil {
		if a.Date, err = parseDate(*in.Date); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if a.Status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	if err := s.store.UpdateArticle(ctx, a, in.Tags); err != nil {
		return nil, mapStoreErr(err, "article not found")
	}

	if oldCategory != a.Category {
		s.deleteMirror(oldCategory, a.Slug)
	}
	if in.Content != nil {
		s.saveMirror(a, *in.Content)
	}

	s.logger.Info("article updated", "id", a.ID, "slug", a.Slug)
	return a, nil
}

// UpdateStatus validates the label and changes only the status.
func (s *ArticleService) UpdateStatus(ctx context.Context, id int64, label string) (domain.Status, error) {
	status, err := domain.ParseStatus(label)
	if err != nil {
		return 0, domainerrors.Validation(err.Error())
	}
	if err := s.store.UpdateArticleStatus(ctx, id, status); err != nil {
		return 0, mapStoreErr(err, "article not found")
	}
	return status, nil
}

// Delete removes the article, its tag associations, and its mirrored files.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	a, err := s.store.GetArticleByID(ctx, id)
	if err != nil {
		return mapStoreErr(err, "article not found")
	}

	s.deleteMirror(a.Category, a.Slug)

	if err := s.store.DeleteArticle(ctx, id); err != nil {
		return mapStoreErr(err, "article not found")
	}

	s.logger.Info("article deleted", "id", id, "slug", a.Slug)
	return nil
}

// TagCounts returns tag usage over published articles, degrading to an
// empty result on storage errors so the frontend never breaks on this path.
func (s *ArticleService) TagCounts(ctx context.Context) *domain.TagCounts {
	counts, err := s.store.ArticleTagCounts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate article tags", "error", err)
		return &domain.TagCounts{Tags: []string{}, Counts: map[string]int{}}
	}
	return counts
}

// Categories returns the filesystem-derived category tree, degrading to an
// empty tree on error.
func (s *ArticleService) Categories() []category.Category {
	tree, err := s.categories.Categories()
	if err != nil {
		s.logger.Error("failed to scan category tree", "error", err)
		return []category.Category{}
	}
	return tree
}

// mirrorDir is the path of an article's markdown directory relative to the
// static roots.
func mirrorDir(cat string) string {
	return path.Join("articles", cat)
}

func (s *ArticleService) saveMirror(a *domain.Article, content string) {
	if err := s.mirror.Save(mirrorDir(a.Category), a.Slug, a.Title, content); err != nil {
		s.logger.Warn("failed to mirror article file", "slug", a.Slug, "error", err)
	}
	s.categories.Invalidate()
}

func (s *ArticleService) deleteMirror(cat, articleSlug string) {
	if err := s.mirror.Delete(mirrorDir(cat), articleSlug); err != nil {
		s.logger.Warn("failed to remove mirrored article file", "slug", articleSlug, "error", err)
	}
	s.categories.Invalidate()
}
