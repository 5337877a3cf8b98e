package service

import (
	"context"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// FigureService manages the figure gallery collection.
type FigureService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFigureService creates a new figure service.
func NewFigureService(store store.Store, logger *slog.Logger) *FigureService {
	return &FigureService{store: store, logger: logger}
}

// CreateFigureInput is the validated payload for creating a figure.
type CreateFigureInput struct {
	Title       string
	Description string
	Filename    string
	Status      string
	Tags        []string
}

// UpdateFigureInput is a partial update; nil fields stay untouched.
type UpdateFigureInput struct {
	Title       *string
	Description *string
	Filename    *string
	Status      *string
	Tags        []string
}

// List returns published figures for the public site.
func (s *FigureService) List(ctx context.Context) ([]*domain.Figure, error) {
	return s.store.ListFigures(ctx, true)
}

// ListAll returns every figure regardless of status.
func (s *FigureService) ListAll(ctx context.Context) ([]*domain.Figure, error) {
	return s.store.ListFigures(ctx, false)
}

// Get returns a figure by id independent of status.
func (s *FigureService) Get(ctx context.Context, id int64) (*domain.Figure, error) {
	f, err := s.store.GetFigureByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "figure not found")
	}
	return f, nil
}

// GetPublished returns a figure visible to the public site. Drafts and
// recycled figures are reported as not found.
func (s *FigureService) GetPublished(ctx context.Context, id int64) (*domain.Figure, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("figure not found")
	}
	return f, nil
}

// Create stores a new figure.
func (s *FigureService) Create(ctx context.Context, in CreateFigureInput) (*domain.Figure, error) {
	status := domain.StatusDraft
	if in.Status != "" {
		var err error
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	f := &domain.Figure{
		Title:       in.Title,
		Description: in.Description,
		Filename:    in.Filename,
		Status:      status,
	}
	if err := s.store.CreateFigure(ctx, f, in.Tags); err != nil {
		return nil, mapStoreErr(err, "figure not found")
	}

	s.logger.Info("figure created", "id", f.ID, "title", f.Title)
	return f, nil
}

// Update applies a partial update.
func (s *FigureService) Update(ctx context.Context, id int64, in UpdateFigureInput) (*domain.Figure, error) {
	f, err := s.store.GetFigureByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "figure not found")
	}

	if in.Title != nil {
		f.Title = *in.Title
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	if in.Filename != nil {
		f.Filename = *in.Filename
	}
	if in.Status != nil {
		if f.Status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	if err := s.store.UpdateFigure(ctx, f, in.Tags); err != nil {
		return nil, mapStoreErr(err, "figure not found")
	}

	s.logger.Info("figure updated", "id", f.ID, "title", f.Title)
	return f, nil
}

// UpdateStatus validates the label and changes only the status.
func (s *FigureService) UpdateStatus(ctx context.Context, id int64, label string) (domain.Status, error) {
	status, err := domain.ParseStatus(label)
	if err != nil {
		return 0, domainerrors.Validation(err.Error())
	}
	if err := s.store.UpdateFigureStatus(ctx, id, status); err != nil {
		return 0, mapStoreErr(err, "figure not found")
	}
	return status, nil
}

// Delete removes the figure and its tag associations.
func (s *FigureService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteFigure(ctx, id); err != nil {
		return mapStoreErr(err, "figure not found")
	}
	s.logger.Info("figure deleted", "id", id)
	return nil
}

// TagCounts returns tag usage over published figures, degrading to an
// empty result on storage errors.
func (s *FigureService) TagCounts(ctx context.Context) *domain.TagCounts {
	counts, err := s.store.FigureTagCounts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate figure tags", "error", err)
		return &domain.TagCounts{Tags: []string{}, Counts: map[string]int{}}
	}
	return counts
}
