package api

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/http/response"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

func (s *Server) registerArticleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/api/articles",
		Summary:     "List published articles",
		Description: "Returns published articles, newest first, with tags inlined.",
		Tags:        []string{"Articles"},
	}, s.handleListArticles)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArticleCategories",
		Method:      http.MethodGet,
		Path:        "/api/articles/categories",
		Summary:     "List article categories",
		Description: "Returns the category tree derived from the mirrored markdown files.",
		Tags:        []string{"Articles"},
	}, s.handleListArticleCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArticleTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List article tags",
		Description: "Returns article tag names with usage counts over published articles.",
		Tags:        []string{"Articles"},
	}, s.handleListArticleTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/api/articles/{slug}",
		Summary:     "Get article by slug",
		Description: "Returns a published article. Drafts and recycled articles yield 404.",
		Tags:        []string{"Articles"},
	}, s.handleGetArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAdminArticles",
		Method:      http.MethodGet,
		Path:        "/api/admin/articles",
		Summary:     "List all articles",
		Description: "Returns articles in every status for the admin panel.",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAdminArticles)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createArticle",
		Method:        http.MethodPost,
		Path:          "/api/articles",
		Summary:       "Create article",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Articles"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArticle",
		Method:      http.MethodPut,
		Path:        "/api/articles/{id}",
		Summary:     "Update article",
		Description: "Partial update. Omitted fields stay untouched; a tags field replaces all tags; a content field rewrites the mirrored file.",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArticleStatus",
		Method:      http.MethodPatch,
		Path:        "/api/articles/{id}/status",
		Summary:     "Update article status",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateArticleStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteArticle",
		Method:      http.MethodDelete,
		Path:        "/api/articles/{id}",
		Summary:     "Delete article",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteArticle)

	// Nested category paths (e.g. /api/articles/notes/go/my-post) carry
	// slashes, which huma path parameters cannot express. chi's wildcard
	// only matches deeper paths, so it never shadows the routes above.
	s.router.Get("/api/articles/*", s.handleGetArticleByCategoryPath)
}

// === DTOs ===

// ArticleResponse contains article data in API responses.
type ArticleResponse struct {
	ID       int64    `json:"id" doc:"Article ID"`
	Title    string   `json:"title" doc:"Title"`
	Slug     string   `json:"slug" doc:"URL-safe slug"`
	Category string   `json:"category,omitempty" doc:"Category path, slash-separated"`
	Summary  string   `json:"summary,omitempty" doc:"Short summary"`
	Date     string   `json:"date" doc:"Publication date (YYYY-MM-DD)"`
	Status   string   `json:"status" doc:"draft, published, or recycled"`
	Tags     []string `json:"tags" doc:"Tag names"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:       a.ID,
		Title:    a.Title,
		Slug:     a.Slug,
		Category: a.Category,
		Summary:  a.Summary,
		Date:     formatDate(a.Date),
		Status:   a.Status.String(),
		Tags:     emptyTags(a.Tags),
	}
}

func toArticleResponses(articles []*domain.Article) []ArticleResponse {
	resp := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		resp[i] = toArticleResponse(a)
	}
	return resp
}

// ListArticlesOutput wraps the article list for huma.
type ListArticlesOutput struct {
	Body struct {
		Articles []ArticleResponse `json:"articles" doc:"Articles, newest first"`
	}
}

// ArticleOutput wraps a single article for huma.
type ArticleOutput struct {
	Body ArticleResponse
}

// CategoryResponse is one node of the category tree.
type CategoryResponse struct {
	Path     string   `json:"path" doc:"Category path relative to articles/"`
	Count    int      `json:"count" doc:"Number of markdown articles"`
	Articles []string `json:"articles" doc:"Article basenames without extension"`
}

// CategoriesOutput wraps the category tree for huma.
type CategoriesOutput struct {
	Body struct {
		Categories []CategoryResponse `json:"categories" doc:"Category tree"`
		Total      int                `json:"total" doc:"Number of categories"`
	}
}

// TagCountsResponse pairs tag names with usage counts.
type TagCountsResponse struct {
	Tags   []string       `json:"tags" doc:"Tag names in creation order"`
	Counts map[string]int `json:"counts" doc:"Usage count per tag name"`
}

// TagCountsOutput wraps tag counts for huma.
type TagCountsOutput struct {
	Body TagCountsResponse
}

func toTagCountsOutput(counts *domain.TagCounts) *TagCountsOutput {
	out := &TagCountsOutput{}
	out.Body.Tags = counts.Tags
	out.Body.Counts = counts.Counts
	return out
}

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Title    string   `json:"title" maxLength:"200" doc:"Title"`
	Slug     string   `json:"slug,omitempty" maxLength:"200" doc:"Optional explicit slug; derived from title when empty"`
	Category string   `json:"category,omitempty" maxLength:"200" doc:"Category path"`
	Summary  string   `json:"summary,omitempty" doc:"Short summary"`
	Content  string   `json:"content" doc:"Markdown body, mirrored to disk"`
	Date     string   `json:"date,omitempty" doc:"YYYY-MM-DD; defaults to today"`
	Status   string   `json:"status,omitempty" doc:"draft (default), published, or recycled"`
	Tags     []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateArticleInput wraps the create request for huma.
type CreateArticleInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateArticleRequest
}

// UpdateArticleRequest is the request body for updating an article.
type UpdateArticleRequest struct {
	Title    *string  `json:"title,omitempty" maxLength:"200" doc:"Title"`
	Category *string  `json:"category,omitempty" maxLength:"200" doc:"Category path"`
	Summary  *string  `json:"summary,omitempty" doc:"Short summary"`
	Content  *string  `json:"content,omitempty" doc:"Markdown body; rewrites the mirrored file"`
	Date     *string  `json:"date,omitempty" doc:"YYYY-MM-DD"`
	Status   *string  `json:"status,omitempty" doc:"draft, published, or recycled"`
	Tags     []string `json:"tags,omitempty" doc:"Replaces all tags when present"`
}

// UpdateArticleInput wraps the update request for huma.
type UpdateArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Article ID"`
	Body          UpdateArticleRequest
}

// UpdateStatusRequest carries the new status label.
type UpdateStatusRequest struct {
	Status string `json:"status" doc:"draft, published, or recycled"`
}

// UpdateArticleStatusInput wraps the status patch for huma.
type UpdateArticleStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Article ID"`
	Body          UpdateStatusRequest
}

// StatusOutput reports the status after a patch.
type StatusOutput struct {
	Body struct {
		ID     int64  `json:"id" doc:"Entity ID"`
		Status string `json:"status" doc:"New status label"`
	}
}

func toStatusOutput(id int64, status domain.Status) *StatusOutput {
	out := &StatusOutput{}
	out.Body.ID = id
	out.Body.Status = status.String()
	return out
}

// DeleteInput identifies an entity to delete.
type DeleteInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Entity ID"`
}

// MessageOutput carries a simple confirmation message.
type MessageOutput struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

func toMessageOutput(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

// === Handlers ===

func (s *Server) handleListArticles(ctx context.Context, _ *struct{}) (*ListArticlesOutput, error) {
	articles, err := s.services.Article.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListArticlesOutput{}
	out.Body.Articles = toArticleResponses(articles)
	return out, nil
}

func (s *Server) handleListAdminArticles(ctx context.Context, input *struct {
	Authorization string `header:"Authorization"`
}) (*ListArticlesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	articles, err := s.services.Article.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListArticlesOutput{}
	out.Body.Articles = toArticleResponses(articles)
	return out, nil
}

func (s *Server) handleGetArticle(ctx context.Context, input *struct {
	Slug string `path:"slug" doc:"Article slug"`
}) (*ArticleOutput, error) {
	a, err := s.services.Article.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &ArticleOutput{Body: toArticleResponse(a)}, nil
}

// handleGetArticleByCategoryPath resolves /api/articles/{category...}/{slug}
// where the category may span several path segments.
func (s *Server) handleGetArticleByCategoryPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/articles/"), "/")
	category, slug := path.Split(rest)
	category = strings.Trim(category, "/")

	if category == "" || slug == "" {
		response.NotFound(w, "article not found", s.logger)
		return
	}

	a, err := s.services.Article.GetByCategoryAndSlug(r.Context(), category, slug)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toArticleResponse(a), s.logger)
}

func (s *Server) handleListArticleCategories(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
	tree := s.services.Article.Categories()

	out := &CategoriesOutput{}
	out.Body.Categories = make([]CategoryResponse, len(tree))
	for i, c := range tree {
		out.Body.Categories[i] = CategoryResponse{
			Path:     c.Path,
			Count:    c.Count,
			Articles: c.Articles,
		}
	}
	out.Body.Total = len(tree)
	return out, nil
}

func (s *Server) handleListArticleTags(ctx context.Context, _ *struct{}) (*TagCountsOutput, error) {
	return toTagCountsOutput(s.services.Article.TagCounts(ctx)), nil
}

func (s *Server) handleCreateArticle(ctx context.Context, input *CreateArticleInput) (*ArticleOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	a, err := s.services.Article.Create(ctx, service.CreateArticleInput{
		Title:    input.Body.Title,
		Slug:     input.Body.Slug,
		Category: input.Body.Category,
		Summary:  input.Body.Summary,
		Content:  input.Body.Content,
		Date:     input.Body.Date,
		Status:   input.Body.Status,
		Tags:     input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ArticleOutput{Body: toArticleResponse(a)}, nil
}

func (s *Server) handleUpdateArticle(ctx context.Context, input *UpdateArticleInput) (*ArticleOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	a, err := s.services.Article.Update(ctx, input.ID, service.UpdateArticleInput{
		Title:    input.Body.Title,
		Category: input.Body.Category,
		Summary:  input.Body.Summary,
		Content:  input.Body.Content,
		Date:     input.Body.Date,
		Status:   input.Body.Status,
		Tags:     input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ArticleOutput{Body: toArticleResponse(a)}, nil
}

func (s *Server) handleUpdateArticleStatus(ctx context.Context, input *UpdateArticleStatusInput) (*StatusOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Article.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return toStatusOutput(input.ID, status), nil
}

func (s *Server) handleDeleteArticle(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Article.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("article deleted"), nil
}
