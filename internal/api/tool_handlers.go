package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/tools",
		Summary:     "List published tools",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "listToolTags",
		Method:      http.MethodGet,
		Path:        "/api/tool-tags",
		Summary:     "List tool tags",
		Tags:        []string{"Tools"},
	}, s.handleListToolTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTool",
		Method:      http.MethodGet,
		Path:        "/api/tools/{id}",
		Summary:     "Get tool",
		Description: "Returns a published tool. Drafts and recycled tools yield 404.",
		Tags:        []string{"Tools"},
	}, s.handleGetTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAdminTools",
		Method:      http.MethodGet,
		Path:        "/api/admin/tools",
		Summary:     "List all tools",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAdminTools)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTool",
		Method:        http.MethodPost,
		Path:          "/api/admin/tools",
		Summary:       "Create tool",
		Description:   "Creates a tool bookmark. The url must be a valid http(s) URL.",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Tools"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTool",
		Method:      http.MethodPut,
		Path:        "/api/admin/tools/{id}",
		Summary:     "Update tool",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateToolStatus",
		Method:      http.MethodPatch,
		Path:        "/api/tools/{id}/status",
		Summary:     "Update tool status",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateToolStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTool",
		Method:      http.MethodDelete,
		Path:        "/api/tools/{id}",
		Summary:     "Delete tool",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTool)
}

// === DTOs ===

// ToolResponse contains tool data in API responses.
type ToolResponse struct {
	ID          int64    `json:"id" doc:"Tool ID"`
	Title       string   `json:"title" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	URL         string   `json:"url" doc:"External link"`
	Status      string   `json:"status" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags" doc:"Tag names"`
}

func toToolResponse(t *domain.Tool) ToolResponse {
	return ToolResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
		Status:      t.Status.String(),
		Tags:        emptyTags(t.Tags),
	}
}

// ListToolsOutput wraps the tool list for huma.
type ListToolsOutput struct {
	Body struct {
		Tools []ToolResponse `json:"tools" doc:"Tools, newest first"`
	}
}

// ToolOutput wraps a single tool for huma.
type ToolOutput struct {
	Body ToolResponse
}

// CreateToolRequest is the request body for creating a tool.
type CreateToolRequest struct {
	Title       string   `json:"title" maxLength:"200" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	URL         string   `json:"url" maxLength:"2000" doc:"External link, http(s) only"`
	Status      string   `json:"status,omitempty" doc:"draft (default), published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateToolInput wraps the create request for huma.
type CreateToolInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateToolRequest
}

// UpdateToolRequest is the request body for updating a tool.
type UpdateToolRequest struct {
	Title       *string  `json:"title,omitempty" maxLength:"200" doc:"Title"`
	Description *string  `json:"description,omitempty" doc:"Description"`
	URL         *string  `json:"url,omitempty" maxLength:"2000" doc:"External link, http(s) only"`
	Status      *string  `json:"status,omitempty" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Replaces all tags when present"`
}

// UpdateToolInput wraps the update request for huma.
type UpdateToolInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Tool ID"`
	Body          UpdateToolRequest
}

// UpdateToolStatusInput wraps the status patch for huma.
type UpdateToolStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Tool ID"`
	Body          UpdateStatusRequest
}

// === Handlers ===

func (s *Server) handleListTools(ctx context.Context, _ *struct{}) (*ListToolsOutput, error) {
	tools, err := s.services.Tool.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListToolsOutput{}
	out.Body.Tools = make([]ToolResponse, len(tools))
	for i, t := range tools {
		out.Body.Tools[i] = toToolResponse(t)
	}
	return out, nil
}

func (s *Server) handleListAdminTools(ctx context.Context, input *struct {
	Authorization string `header:"Authorization"`
}) (*ListToolsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tools, err := s.services.Tool.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListToolsOutput{}
	out.Body.Tools = make([]ToolResponse, len(tools))
	for i, t := range tools {
		out.Body.Tools[i] = toToolResponse(t)
	}
	return out, nil
}

func (s *Server) handleGetTool(ctx context.Context, input *struct {
	ID int64 `path:"id" doc:"Tool ID"`
}) (*ToolOutput, error) {
	t, err := s.services.Tool.GetPublished(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleListToolTags(ctx context.Context, _ *struct{}) (*TagCountsOutput, error) {
	return toTagCountsOutput(s.services.Tool.TagCounts(ctx)), nil
}

func (s *Server) handleCreateTool(ctx context.Context, input *CreateToolInput) (*ToolOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	t, err := s.services.Tool.Create(ctx, service.CreateToolInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		URL:         input.Body.URL,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleUpdateTool(ctx context.Context, input *UpdateToolInput) (*ToolOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	t, err := s.services.Tool.Update(ctx, input.ID, service.UpdateToolInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		URL:         input.Body.URL,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleUpdateToolStatus(ctx context.Context, input *UpdateToolStatusInput) (*StatusOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Tool.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return toStatusOutput(input.ID, status), nil
}

func (s *Server) handleDeleteTool(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Tool.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("tool deleted"), nil
}
