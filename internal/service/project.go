package service

import (
	"context"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/slug"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// projectMirrorDir is where project writeups live under the static roots.
const projectMirrorDir = "articles/projects"

// ProjectService mirrors the article lifecycle for project writeups, which
// share the markdown mirror but have no category of their own.
type ProjectService struct {
	store      store.Store
	mirror     *mirror.Mirror
	categories *category.Cache
	logger     *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(store store.Store, mirror *mirror.Mirror, categories *category.Cache, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		store:      store,
		mirror:     mirror,
		categories: categories,
		logger:     logger,
	}
}

// CreateProjectInput is the validated payload for creating a project.
type CreateProjectInput struct {
	Title   string
	Slug    string
	Summary string
	Content string
	Date    string
	Status  string
	Tags    []string
}

// UpdateProjectInput is a partial update; nil fields stay untouched.
type UpdateProjectInput struct {
	Title   *string
	Summary *string
	Content *string
	Date    *string
	Status  *string
	Tags    []string
}

// List returns published projects for the public site.
func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.store.ListProjects(ctx, true)
}

// ListAll returns every project regardless of status.
func (s *ProjectService) ListAll(ctx context.Context) ([]*domain.Project, error) {
	return s.store.ListProjects(ctx, false)
}

// GetBySlug returns a published project. Drafts and recycled projects are
// reported as not found.
func (s *ProjectService) GetBySlug(ctx context.Context, projectSlug string) (*domain.Project, error) {
	p, err := s.store.GetProjectBySlug(ctx, projectSlug)
	if err != nil {
		return nil, mapStoreErr(err, "project not found")
	}
	if p.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("project not found")
	}
	return p, nil
}

// Create stores a new project and mirrors its markdown content.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
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

	p := &domain.Project{
		Title:   in.Title,
		Slug:    slug.Make(base),
		Summary: in.Summary,
		Date:    date,
		Status:  status,
	}
	if err := s.store.CreateProject(ctx, p, in.Tags); err != nil {
		return nil, mapStoreErr(err, "project not found")
	}

	s.saveMirror(p, in.Content)

	s.logger.Info("project created", "id", p.ID, "slug", p.Slug, "status", p.Status.String())
	return p, nil
}

// Update applies a partial update and rewrites the mirror file when content
// is supplied. The slug never changes after creation.
func (s *ProjectService) Update(ctx context.Context, id int64, in UpdateProjectInput) (*domain.Project, error) {
	p, err := s.store.GetProjectByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "project not found")
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Summary != nil {
		p.Summary = *in.Summary
	}
	if in.Date != nil {
		if p.Date, err = parseDate(*in.Date); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if p.Status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	if err := s.store.UpdateProject(ctx, p, in.Tags); err != nil {
		return nil, mapStoreErr(err, "project not found")
	}

	if in.Content != nil {
		s.saveMirror(p, *in.Content)
	}

	s.logger.Info("project updated", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// UpdateStatus validates the label and changes only the status.
func (s *ProjectService) UpdateStatus(ctx context.Context, id int64, label string) (domain.Status, error) {
	status, err := domain.ParseStatus(label)
	if err != nil {
		return 0, domainerrors.Validation(err.Error())
	}
	if err := s.store.UpdateProjectStatus(ctx, id, status); err != nil {
		return 0, mapStoreErr(err, "project not found")
	}
	return status, nil
}

// Delete removes the project, its tag associations, and its mirrored files.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	p, err := s.store.GetProjectByID(ctx, id)
	if err != nil {
		return mapStoreErr(err, "project not found")
	}

	if err := s.mirror.Delete(projectMirrorDir, p.Slug); err != nil {
		s.logger.Warn("failed to remove mirrored project file", "slug", p.Slug, "error", err)
	}
	s.categories.Invalidate()

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return mapStoreErr(err, "project not found")
	}

	s.logger.Info("project deleted", "id", id, "slug", p.Slug)
	return nil
}

// TagCounts returns tag usage over published projects, degrading to an
// empty result on storage errors.
func (s *ProjectService) TagCounts(ctx context.Context) *domain.TagCounts {
	counts, err := s.store.ProjectTagCounts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate project tags", "error", err)
		return &domain.TagCounts{Tags: []string{}, Counts: map[string]int{}}
	}
	return counts
}

func (s *ProjectService) saveMirror(p *domain.Project, content string) {
	if err := s.mirror.Save(projectMirrorDir, p.Slug, p.Title, content); err != nil {
		s.logger.Warn("failed to mirror project file", "slug", p.Slug, "error", err)
	}
	s.categories.Invalidate()
}
