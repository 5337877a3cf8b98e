package service

import (
	"context"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/store"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

// ToolService manages the tool/bookmark collection. Tools are external
// links, so their URL is checked here rather than trusting the caller.
type ToolService struct {
	store    store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewToolService creates a new tool service.
func NewToolService(store store.Store, validate *validation.Validator, logger *slog.Logger) *ToolService {
	return &ToolService{store: store, validate: validate, logger: logger}
}

// CreateToolInput is the validated payload for creating a tool.
type CreateToolInput struct {
	Title       string
	Description string
	URL         string
	Status      string
	Tags        []string
}

// UpdateToolInput is a partial update; nil fields stay untouched.
type UpdateToolInput struct {
	Title       *string
	Description *string
	URL         *string
	Status      *string
	Tags        []string
}

func (s *ToolService) checkURL(raw string) error {
	if err := s.validate.Var(raw, "required,http_url"); err != nil {
		return domainerrors.Validationf("invalid tool url %q, expected an http(s) URL", raw)
	}
	return nil
}

// List returns published tools for the public site.
func (s *ToolService) List(ctx context.Context) ([]*domain.Tool, error) {
	return s.store.ListTools(ctx, true)
}

// ListAll returns every tool regardless of status.
func (s *ToolService) ListAll(ctx context.Context) ([]*domain.Tool, error) {
	return s.store.ListTools(ctx, false)
}

// Get returns a tool by id independent of status.
func (s *ToolService) Get(ctx context.Context, id int64) (*domain.Tool, error) {
	t, err := s.store.GetToolByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "tool not found")
	}
	return t, nil
}

// GetPublished returns a tool visible to the public site. Drafts and
// recycled tools are reported as not found.
func (s *ToolService) GetPublished(ctx context.Context, id int64) (*domain.Tool, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("tool not found")
	}
	return t, nil
}

// Create stores a new tool.
func (s *ToolService) Create(ctx context.Context, in CreateToolInput) (*domain.Tool, error) {
	if err := s.checkURL(in.URL); err != nil {
		return nil, err
	}

	status := domain.StatusDraft
	if in.Status != "" {
		var err error
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	t := &domain.Tool{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Status:      status,
	}
	if err := s.store.CreateTool(ctx, t, in.Tags); err != nil {
		return nil, mapStoreErr(err, "tool not found")
	}

	s.logger.Info("tool created", "id", t.ID, "title", t.Title)
	return t, nil
}

// Update applies a partial update.
func (s *ToolService) Update(ctx context.Context, id int64, in UpdateToolInput) (*domain.Tool, error) {
	t, err := s.store.GetToolByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "tool not found")
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.URL != nil {
		if err := s.checkURL(*in.URL); err != nil {
			return nil, err
		}
		t.URL = *in.URL
	}
	if in.Status != nil {
		if t.Status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	if err := s.store.UpdateTool(ctx, t, in.Tags); err != nil {
		return nil, mapStoreErr(err, "tool not found")
	}

	s.logger.Info("tool updated", "id", t.ID, "title", t.Title)
	return t, nil
}

// UpdateStatus validates the label and changes only the status.
func (s *ToolService) UpdateStatus(ctx context.Context, id int64, label string) (domain.Status, error) {
	status, err := domain.ParseStatus(label)
	if err != nil {
		return 0, domainerrors.Validation(err.Error())
	}
	if err := s.store.UpdateToolStatus(ctx, id, status); err != nil {
		return 0, mapStoreErr(err, "tool not found")
	}
	return status, nil
}

// Delete removes the tool and its tag associations.
func (s *ToolService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTool(ctx, id); err != nil {
		return mapStoreErr(err, "tool not found")
	}
	s.logger.Info("tool deleted", "id", id)
	return nil
}

// TagCounts returns tag usage over published tools, degrading to an empty
// result on storage errors.
func (s *ToolService) TagCounts(ctx context.Context) *domain.TagCounts {
	counts, err := s.store.ToolTagCounts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate tool tags", "error", err)
		return &domain.TagCounts{Tags: []string{}, Counts: map[string]int{}}
	}
	return counts
}
