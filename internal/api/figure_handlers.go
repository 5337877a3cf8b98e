package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

func (s *Server) registerFigureRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFigures",
		Method:      http.MethodGet,
		Path:        "/api/figures",
		Summary:     "List published figures",
		Tags:        []string{"Figures"},
	}, s.handleListFigures)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFigureTags",
		Method:      http.MethodGet,
		Path:        "/api/figure-tags",
		Summary:     "List figure tags",
		Tags:        []string{"Figures"},
	}, s.handleListFigureTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFigure",
		Method:      http.MethodGet,
		Path:        "/api/figures/{id}",
		Summary:     "Get figure",
		Description: "Returns a published figure. Drafts and recycled figures yield 404.",
		Tags:        []string{"Figures"},
	}, s.handleGetFigure)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAdminFigures",
		Method:      http.MethodGet,
		Path:        "/api/admin/figures",
		Summary:     "List all figures",
		Tags:        []string{"Figures"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAdminFigures)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createFigure",
		Method:        http.MethodPost,
		Path:          "/api/admin/figures",
		Summary:       "Create figure",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Figures"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateFigure)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFigure",
		Method:      http.MethodPut,
		Path:        "/api/admin/figures/{id}",
		Summary:     "Update figure",
		Tags:        []string{"Figures"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateFigure)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFigureStatus",
		Method:      http.MethodPatch,
		Path:        "/api/figures/{id}/status",
		Summary:     "Update figure status",
		Tags:        []string{"Figures"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateFigureStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFigure",
		Method:      http.MethodDelete,
		Path:        "/api/figures/{id}",
		Summary:     "Delete figure",
		Tags:        []string{"Figures"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteFigure)
}

// === DTOs ===

// FigureResponse contains figure data in API responses.
type FigureResponse struct {
	ID          int64    `json:"id" doc:"Figure ID"`
	Title       string   `json:"title" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	Filename    string   `json:"filename,omitempty" doc:"Image filename"`
	Status      string   `json:"status" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags" doc:"Tag names"`
}

func toFigureResponse(f *domain.Figure) FigureResponse {
	return FigureResponse{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Filename:    f.Filename,
		Status:      f.Status.String(),
		Tags:        emptyTags(f.Tags),
	}
}

// ListFiguresOutput wraps the figure list for huma.
type ListFiguresOutput struct {
	Body struct {
		Figures []FigureResponse `json:"figures" doc:"Figures, newest first"`
	}
}

// FigureOutput wraps a single figure for huma.
type FigureOutput struct {
	Body FigureResponse
}

// CreateFigureRequest is the request body for creating a figure.
type CreateFigureRequest struct {
	Title       string   `json:"title" maxLength:"200" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	Filename    string   `json:"filename,omitempty" maxLength:"500" doc:"Image filename"`
	Status      string   `json:"status,omitempty" doc:"draft (default), published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateFigureInput wraps the create request for huma.
type CreateFigureInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateFigureRequest
}

// UpdateFigureRequest is the request body for updating a figure.
type UpdateFigureRequest struct {
	Title       *string  `json:"title,omitempty" maxLength:"200" doc:"Title"`
	Description *string  `json:"description,omitempty" doc:"Description"`
	Filename    *string  `json:"filename,omitempty" maxLength:"500" doc:"Image filename"`
	Status      *string  `json:"status,omitempty" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Replaces all tags when present"`
}

// UpdateFigureInput wraps the update request for huma.
type UpdateFigureInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Figure ID"`
	Body          UpdateFigureRequest
}

// UpdateFigureStatusInput wraps the status patch for huma.
type UpdateFigureStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Figure ID"`
	Body          UpdateStatusRequest
}

// === Handlers ===

func (s *Server) handleListFigures(ctx context.Context, _ *struct{}) (*ListFiguresOutput, error) {
	figures, err := s.services.Figure.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListFiguresOutput{}
	out.Body.Figures = make([]FigureResponse, len(figures))
	for i, f := range figures {
		out.Body.Figures[i] = toFigureResponse(f)
	}
	return out, nil
}

func (s *Server) handleListAdminFigures(ctx context.Context, input *struct {
	Authorization string `header:"Authorization"`
}) (*ListFiguresOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	figures, err := s.services.Figure.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListFiguresOutput{}
	out.Body.Figures = make([]FigureResponse, len(figures))
	for i, f := range figures {
		out.Body.Figures[i] = toFigureResponse(f)
	}
	return out, nil
}

func (s *Server) handleGetFigure(ctx context.Context, input *struct {
	ID int64 `path:"id" doc:"Figure ID"`
}) (*FigureOutput, error) {
	f, err := s.services.Figure.GetPublished(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &FigureOutput{Body: toFigureResponse(f)}, nil
}

func (s *Server) handleListFigureTags(ctx context.Context, _ *struct{}) (*TagCountsOutput, error) {
	return toTagCountsOutput(s.services.Figure.TagCounts(ctx)), nil
}

func (s *Server) handleCreateFigure(ctx context.Context, input *CreateFigureInput) (*FigureOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	f, err := s.services.Figure.Create(ctx, service.CreateFigureInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Filename:    input.Body.Filename,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &FigureOutput{Body: toFigureResponse(f)}, nil
}

func (s *Server) handleUpdateFigure(ctx context.Context, input *UpdateFigureInput) (*FigureOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	f, err := s.services.Figure.Update(ctx, input.ID, service.UpdateFigureInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Filename:    input.Body.Filename,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &FigureOutput{Body: toFigureResponse(f)}, nil
}

func (s *Server) handleUpdateFigureStatus(ctx context.Context, input *UpdateFigureStatusInput) (*StatusOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Figure.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return toStatusOutput(input.ID, status), nil
}

func (s *Server) handleDeleteFigure(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Figure.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("figure deleted"), nil
}
