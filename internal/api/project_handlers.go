package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

func (s *Server) registerProjectRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProjects",
		Method:      http.MethodGet,
		Path:        "/api/projects",
		Summary:     "List published projects",
		Tags:        []string{"Projects"},
	}, s.handleListProjects)

	huma.Register(s.api, huma.Operation{
		OperationID: "listProjectTags",
		Method:      http.MethodGet,
		Path:        "/api/project-tags",
		Summary:     "List project tags",
		Description: "Returns project tag names with usage counts over published projects.",
		Tags:        []string{"Projects"},
	}, s.handleListProjectTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProject",
		Method:      http.MethodGet,
		Path:        "/api/projects/{slug}",
		Summary:     "Get project by slug",
		Description: "Returns a published project. Drafts and recycled projects yield 404.",
		Tags:        []string{"Projects"},
	}, s.handleGetProject)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAdminProjects",
		Method:      http.MethodGet,
		Path:        "/api/admin/projects",
		Summary:     "List all projects",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAdminProjects)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createProject",
		Method:        http.MethodPost,
		Path:          "/api/projects",
		Summary:       "Create project",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Projects"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateProject)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProject",
		Method:      http.MethodPut,
		Path:        "/api/projects/{id}",
		Summary:     "Update project",
		Description: "Partial update. The slug never changes after creation.",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProject)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProjectStatus",
		Method:      http.MethodPatch,
		Path:        "/api/projects/{id}/status",
		Summary:     "Update project status",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProjectStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteProject",
		Method:      http.MethodDelete,
		Path:        "/api/projects/{id}",
		Summary:     "Delete project",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteProject)
}

// === DTOs ===

// ProjectResponse contains project data in API responses.
type ProjectResponse struct {
	ID      int64    `json:"id" doc:"Project ID"`
	Title   string   `json:"title" doc:"Title"`
	Slug    string   `json:"slug" doc:"URL-safe slug"`
	Summary string   `json:"summary,omitempty" doc:"Short summary"`
	Date    string   `json:"date" doc:"Date (YYYY-MM-DD)"`
	Status  string   `json:"status" doc:"draft, published, or recycled"`
	Tags    []string `json:"tags" doc:"Tag names"`
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Summary: p.Summary,
		Date:    formatDate(p.Date),
		Status:  p.Status.String(),
		Tags:    emptyTags(p.Tags),
	}
}

// ListProjectsOutput wraps the project list for huma.
type ListProjectsOutput struct {
	Body struct {
		Projects []ProjectResponse `json:"projects" doc:"Projects, newest first"`
	}
}

// ProjectOutput wraps a single project for huma.
type ProjectOutput struct {
	Body ProjectResponse
}

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Title   string   `json:"title" maxLength:"200" doc:"Title"`
	Slug    string   `json:"slug,omitempty" maxLength:"200" doc:"Optional explicit slug; derived from title when empty"`
	Summary string   `json:"summary,omitempty" doc:"Short summary"`
	Content string   `json:"content" doc:"Markdown body, mirrored to disk"`
	Date    string   `json:"date,omitempty" doc:"YYYY-MM-DD; defaults to today"`
	Status  string   `json:"status,omitempty" doc:"draft (default), published, or recycled"`
	Tags    []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateProjectInput wraps the create request for huma.
type CreateProjectInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateProjectRequest
}

// UpdateProjectRequest is the request body for updating a project.
type UpdateProjectRequest struct {
	Title   *string  `json:"title,omitempty" maxLength:"200" doc:"Title"`
	Summary *string  `json:"summary,omitempty" doc:"Short summary"`
	Content *string  `json:"content,omitempty" doc:"Markdown body; rewrites the mirrored file"`
	Date    *string  `json:"date,omitempty" doc:"YYYY-MM-DD"`
	Status  *string  `json:"status,omitempty" doc:"draft, published, or recycled"`
	Tags    []string `json:"tags,omitempty" doc:"Replaces all tags when present"`
}

// UpdateProjectInput wraps the update request for huma.
type UpdateProjectInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Project ID"`
	Body          UpdateProjectRequest
}

// UpdateProjectStatusInput wraps the status patch for huma.
type UpdateProjectStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Project ID"`
	Body          UpdateStatusRequest
}

// === Handlers ===

func (s *Server) handleListProjects(ctx context.Context, _ *struct{}) (*ListProjectsOutput, error) {
	projects, err := s.services.Project.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListProjectsOutput{}
	out.Body.Projects = make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out.Body.Projects[i] = toProjectResponse(p)
	}
	return out, nil
}

func (s *Server) handleListAdminProjects(ctx context.Context, input *struct {
	Authorization string `header:"Authorization"`
}) (*ListProjectsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	projects, err := s.services.Project.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListProjectsOutput{}
	out.Body.Projects = make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out.Body.Projects[i] = toProjectResponse(p)
	}
	return out, nil
}

func (s *Server) handleGetProject(ctx context.Context, input *struct {
	Slug string `path:"slug" doc:"Project slug"`
}) (*ProjectOutput, error) {
	p, err := s.services.Project.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &ProjectOutput{Body: toProjectResponse(p)}, nil
}

func (s *Server) handleListProjectTags(ctx context.Context, _ *struct{}) (*TagCountsOutput, error) {
	return toTagCountsOutput(s.services.Project.TagCounts(ctx)), nil
}

func (s *Server) handleCreateProject(ctx context.Context, input *CreateProjectInput) (*ProjectOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	p, err := s.services.Project.Create(ctx, service.CreateProjectInput{
		Title:   input.Body.Title,
		Slug:    input.Body.Slug,
		Summary: input.Body.Summary,
		Content: input.Body.Content,
		Date:    input.Body.Date,
		Status:  input.Body.Status,
		Tags:    input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ProjectOutput{Body: toProjectResponse(p)}, nil
}

func (s *Server) handleUpdateProject(ctx context.Context, input *UpdateProjectInput) (*ProjectOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	p, err := s.services.Project.Update(ctx, input.ID, service.UpdateProjectInput{
		Title:   input.Body.Title,
		Summary: input.Body.Summary,
		Content: input.Body.Content,
		Date:    input.Body.Date,
		Status:  input.Body.Status,
		Tags:    input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ProjectOutput{Body: toProjectResponse(p)}, nil
}

func (s *Server) handleUpdateProjectStatus(ctx context.Context, input *UpdateProjectStatusInput) (*StatusOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Project.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return toStatusOutput(input.ID, status), nil
}

func (s *Server) handleDeleteProject(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Project.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("project deleted"), nil
}
