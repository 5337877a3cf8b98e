package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

func (s *Server) registerFavoriteImageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavoriteImages",
		Method:      http.MethodGet,
		Path:        "/api/favorite-images",
		Summary:     "List favorite images",
		Tags:        []string{"Favorite images"},
	}, s.handleListFavoriteImages)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFavoriteImage",
		Method:      http.MethodGet,
		Path:        "/api/favorite-images/{id}",
		Summary:     "Get favorite image",
		Tags:        []string{"Favorite images"},
	}, s.handleGetFavoriteImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFavoriteImage",
		Method:      http.MethodDelete,
		Path:        "/api/favorite-images/{id}",
		Summary:     "Delete favorite image",
		Description: "Removes the gallery record. Mirrored files stay on disk.",
		Tags:        []string{"Favorite images"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteFavoriteImage)
}

// === DTOs ===

// FavoriteImageResponse contains favorite image data in API responses.
type FavoriteImageResponse struct {
	ID       int64  `json:"id" doc:"Image ID"`
	Filename string `json:"filename" doc:"Image filename under resources/favorite"`
}

// ListFavoriteImagesOutput wraps the image list for huma.
type ListFavoriteImagesOutput struct {
	Body struct {
		Images []FavoriteImageResponse `json:"images" doc:"Images, newest first"`
	}
}

// FavoriteImageOutput wraps a single image for huma.
type FavoriteImageOutput struct {
	Body FavoriteImageResponse
}

func toFavoriteImageResponse(img *domain.FavoriteImage) FavoriteImageResponse {
	return FavoriteImageResponse{ID: img.ID, Filename: img.Filename}
}

// === Handlers ===

func (s *Server) handleListFavoriteImages(ctx context.Context, _ *struct{}) (*ListFavoriteImagesOutput, error) {
	images, err := s.services.FavoriteImage.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListFavoriteImagesOutput{}
	out.Body.Images = make([]FavoriteImageResponse, len(images))
	for i, img := range images {
		out.Body.Images[i] = toFavoriteImageResponse(img)
	}
	return out, nil
}

func (s *Server) handleGetFavoriteImage(ctx context.Context, input *struct {
	ID int64 `path:"id" doc:"Image ID"`
}) (*FavoriteImageOutput, error) {
	img, err := s.store.GetFavoriteImageByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("favorite image not found")
		}
		return nil, err
	}
	return &FavoriteImageOutput{Body: toFavoriteImageResponse(img)}, nil
}

func (s *Server) handleDeleteFavoriteImage(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.FavoriteImage.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("favorite image deleted"), nil
}
