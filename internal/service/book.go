package service

import (
	"context"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// BookService manages the reading-list collection. Books have no markdown
// mirror; the PDF upload path is handled by the HTTP layer and only the
// resulting filename is stored here.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{store: store, logger: logger}
}

// CreateBookInput is the validated payload for creating a book.
type CreateBookInput struct {
	Title       string
	Description string
	Cover       string
	Filename    string
	Status      string
	Tags        []string
}

// UpdateBookInput is a partial update; nil fields stay untouched.
type UpdateBookInput struct {
	Title       *string
	Description *string
	Cover       *string
	Filename    *string
	Status      *string
	Tags        []string
}

// List returns published books for the public site.
func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx, true)
}

// ListAll returns every book regardless of status.
func (s *BookService) ListAll(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx, false)
}

// Get returns a book by id independent of status.
func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "book not found")
	}
	return b, nil
}

// GetPublished returns a book visible to the public site. Drafts and
// recycled books are reported as not found.
func (s *BookService) GetPublished(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.StatusPublished {
		return nil, domainerrors.NotFound("book not found")
	}
	return b, nil
}

// Create stores a new book.
func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	status := domain.StatusDraft
	if in.Status != "" {
		var err error
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	b := &domain.Book{
		Title:       in.Title,
		Description: in.Description,
		Cover:       in.Cover,
		Filename:    in.Filename,
		Status:      status,
	}
	if err := s.store.CreateBook(ctx, b, in.Tags); err != nil {
		return nil, mapStoreErr(err, "book not found")
	}

	s.logger.Info("book created", "id", b.ID, "title", b.Title)
	return b, nil
}

// Update applies a partial update.
func (s *BookService) Update(ctx context.Context, id int64, in UpdateBookInput) (*domain.Book, error) {
	b, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "book not found")
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Cover != nil {
		b.Cover = *in.Cover
	}
	if in.Filename != nil {
		b.Filename = *in.Filename
	}
	if in.Status != nil {
		if b.Status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, domainerrors.Validation(err.Error())
		}
	}

	if err := s.store.UpdateBook(ctx, b, in.Tags); err != nil {
		return nil, mapStoreErr(err, "book not found")
	}

	s.logger.Info("book updated", "id", b.ID, "title", b.Title)
	return b, nil
}

// UpdateStatus validates the label and changes only the status.
func (s *BookService) UpdateStatus(ctx context.Context, id int64, label string) (domain.Status, error) {
	status, err := domain.ParseStatus(label)
	if err != nil {
		return 0, domainerrors.Validation(err.Error())
	}
	if err := s.store.UpdateBookStatus(ctx, id, status); err != nil {
		return 0, mapStoreErr(err, "book not found")
	}
	return status, nil
}

// Delete removes the book and its tag associations.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return mapStoreErr(err, "book not found")
	}
	s.logger.Info("book deleted", "id", id)
	return nil
}

// TagCounts returns tag usage over published books, degrading to an empty
// result on storage errors.
func (s *BookService) TagCounts(ctx context.Context) *domain.TagCounts {
	counts, err := s.store.BookTagCounts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate book tags", "error", err)
		return &domain.TagCounts{Tags: []string{}, Counts: map[string]int{}}
	}
	return counts
}
