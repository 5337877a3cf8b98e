package service

import (
	"context"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// FavoriteImageService manages the favorite-image gallery. The HTTP layer
// saves the uploaded file under both static roots and records only the
// resulting filename here.
type FavoriteImageService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFavoriteImageService creates a new favorite-image service.
func NewFavoriteImageService(store store.Store, logger *slog.Logger) *FavoriteImageService {
	return &FavoriteImageService{store: store, logger: logger}
}

// List returns all favorite images, newest first.
func (s *FavoriteImageService) List(ctx context.Context) ([]*domain.FavoriteImage, error) {
	return s.store.ListFavoriteImages(ctx)
}

// Create records an uploaded image filename.
func (s *FavoriteImageService) Create(ctx context.Context, filename string) (*domain.FavoriteImage, error) {
	img := &domain.FavoriteImage{Filename: filename}
	if err := s.store.CreateFavoriteImage(ctx, img); err != nil {
		return nil, mapStoreErr(err, "favorite image not found")
	}
	s.logger.Info("favorite image created", "id", img.ID, "filename", img.Filename)
	return img, nil
}

// Delete removes the database record. The mirrored files stay on disk; the
// gallery only shows what the database lists.
func (s *FavoriteImageService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteFavoriteImage(ctx, id); err != nil {
		return mapStoreErr(err, "favorite image not found")
	}
	s.logger.Info("favorite image deleted", "id", id)
	return nil
}
