// Package store defines the persistence interface for the NyeWeb server.
package store

import (
	"context"

	"github.com/nyeweb/nyeweb-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// The SQLite implementation lives in store/sqlite; services depend on this
// interface so tests can substitute fakes.
type Store interface {
	Close() error

	// Articles
	CreateArticle(ctx context.Context, a *domain.Article, tags []string) error
	GetArticleByID(ctx context.Context, id int64) (*domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	GetArticleByCategoryAndSlug(ctx context.Context, category, slug string) (*domain.Article, error)
	ListArticles(ctx context.Context, publishedOnly bool) ([]*domain.Article, error)
	UpdateArticle(ctx context.Context, a *domain.Article, tags []string) error
	UpdateArticleStatus(ctx context.Context, id int64, status domain.Status) error
	DeleteArticle(ctx context.Context, id int64) error
	ArticleTagCounts(ctx context.Context) (*domain.TagCounts, error)

	// Projects
	CreateProject(ctx context.Context, p *domain.Project, tags []string) error
	GetProjectByID(ctx context.Context, id int64) (*domain.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error)
	ListProjects(ctx context.Context, publishedOnly bool) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, p *domain.Project, tags []string) error
	UpdateProjectStatus(ctx context.Context, id int64, status domain.Status) error
	DeleteProject(ctx context.Context, id int64) error
	ProjectTagCounts(ctx context.Context) (*domain.TagCounts, error)

	// Books
	CreateBook(ctx context.Context, b *domain.Book, tags []string) error
	GetBookByID(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context, publishedOnly bool) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, b *domain.Book, tags []string) error
	UpdateBookStatus(ctx context.Context, id int64, status domain.Status) error
	DeleteBook(ctx context.Context, id int64) error
	BookTagCounts(ctx context.Context) (*domain.TagCounts, error)

	// Figures
	CreateFigure(ctx context.Context, f *domain.Figure, tags []string) error
	GetFigureByID(ctx context.Context, id int64) (*domain.Figure, error)
	ListFigures(ctx context.Context, publishedOnly bool) ([]*domain.Figure, error)
	UpdateFigure(ctx context.Context, f *domain.Figure, tags []string) error
	UpdateFigureStatus(ctx context.Context, id int64, status domain.Status) error
	DeleteFigure(ctx context.Context, id int64) error
	FigureTagCounts(ctx context.Context) (*domain.TagCounts, error)

	// Tools
	CreateTool(ctx context.Context, t *domain.Tool, tags []string) error
	GetToolByID(ctx context.Context, id int64) (*domain.Tool, error)
	ListTools(ctx context.Context, publishedOnly bool) ([]*domain.Tool, error)
	UpdateTool(ctx context.Context, t *domain.Tool, tags []string) error
	UpdateToolStatus(ctx context.Context, id int64, status domain.Status) error
	DeleteTool(ctx context.Context, id int64) error
	ToolTagCounts(ctx context.Context) (*domain.TagCounts, error)

	// Favorite images
	CreateFavoriteImage(ctx context.Context, img *domain.FavoriteImage) error
	GetFavoriteImageByID(ctx context.Context, id int64) (*domain.FavoriteImage, error)
	ListFavoriteImages(ctx context.Context) ([]*domain.FavoriteImage, error)
	DeleteFavoriteImage(ctx context.Context, id int64) error

	// Timeline
	CreateTimelineEntry(ctx context.Context, e *domain.TimelineEntry) error
	GetTimelineEntryByID(ctx context.Context, id int64) (*domain.TimelineEntry, error)
	ListTimeline(ctx context.Context) ([]*domain.TimelineEntry, error)
	UpdateTimelineEntry(ctx context.Context, e *domain.TimelineEntry) error
	DeleteTimelineEntry(ctx context.Context, id int64) error

	// Admins
	CreateAdmin(ctx context.Context, a *domain.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetAdminByToken(ctx context.Context, token string) (*domain.Admin, error)
	SetAdminToken(ctx context.Context, id int64, token string) error
	ClearAdminToken(ctx context.Context, token string) error
}
