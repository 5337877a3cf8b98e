package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List published books",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookTags",
		Method:      http.MethodGet,
		Path:        "/api/book-tags",
		Summary:     "List book tags",
		Tags:        []string{"Books"},
	}, s.handleListBookTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Description: "Returns a published book. Drafts and recycled books yield 404.",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAdminBooks",
		Method:      http.MethodGet,
		Path:        "/api/admin/books",
		Summary:     "List all books",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAdminBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/admin/books",
		Summary:       "Create book",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/admin/books/{id}",
		Summary:     "Update book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBookStatus",
		Method:      http.MethodPatch,
		Path:        "/api/books/{id}/status",
		Summary:     "Update book status",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBookStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID          int64    `json:"id" doc:"Book ID"`
	Title       string   `json:"title" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	Cover       string   `json:"cover,omitempty" doc:"Cover image path"`
	Filename    string   `json:"filename,omitempty" doc:"PDF filename under resources/book"`
	Status      string   `json:"status" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags" doc:"Tag names"`
}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Cover:       b.Cover,
		Filename:    b.Filename,
		Status:      b.Status.String(),
		Tags:        emptyTags(b.Tags),
	}
}

// ListBooksOutput wraps the book list for huma.
type ListBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Books, newest first"`
	}
}

// BookOutput wraps a single book for huma.
type BookOutput struct {
	Body BookResponse
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	Title       string   `json:"title" maxLength:"200" doc:"Title"`
	Description string   `json:"description,omitempty" doc:"Description"`
	Cover       string   `json:"cover,omitempty" maxLength:"500" doc:"Cover image path"`
	Filename    string   `json:"filename,omitempty" maxLength:"500" doc:"PDF filename from the upload endpoint"`
	Status      string   `json:"status,omitempty" doc:"draft (default), published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateBookInput wraps the create request for huma.
type CreateBookInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateBookRequest
}

// UpdateBookRequest is the request body for updating a book.
type UpdateBookRequest struct {
	Title       *string  `json:"title,omitempty" maxLength:"200" doc:"Title"`
	Description *string  `json:"description,omitempty" doc:"Description"`
	Cover       *string  `json:"cover,omitempty" maxLength:"500" doc:"Cover image path"`
	Filename    *string  `json:"filename,omitempty" maxLength:"500" doc:"PDF filename"`
	Status      *string  `json:"status,omitempty" doc:"draft, published, or recycled"`
	Tags        []string `json:"tags,omitempty" doc:"Replaces all tags when present"`
}

// UpdateBookInput wraps the update request for huma.
type UpdateBookInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Book ID"`
	Body          UpdateBookRequest
}

// UpdateBookStatusInput wraps the status patch for huma.
type UpdateBookStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Book ID"`
	Body          UpdateStatusRequest
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListBooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, b := range books {
		out.Body.Books[i] = toBookResponse(b)
	}
	return out, nil
}

func (s *Server) handleListAdminBooks(ctx context.Context, input *struct {
	Authorization string `header:"Authorization"`
}) (*ListBooksOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	books, err := s.services.Book.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListBooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, b := range books {
		out.Body.Books[i] = toBookResponse(b)
	}
	return out, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *struct {
	ID int64 `path:"id" doc:"Book ID"`
}) (*BookOutput, error) {
	b, err := s.services.Book.GetPublished(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(b)}, nil
}

func (s *Server) handleListBookTags(ctx context.Context, _ *struct{}) (*TagCountsOutput, error) {
	return toTagCountsOutput(s.services.Book.TagCounts(ctx)), nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	b, err := s.services.Book.Create(ctx, service.CreateBookInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Cover:       input.Body.Cover,
		Filename:    input.Body.Filename,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(b)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	b, err := s.services.Book.Update(ctx, input.ID, service.UpdateBookInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Cover:       input.Body.Cover,
		Filename:    input.Body.Filename,
		Status:      input.Body.Status,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(b)}, nil
}

func (s *Server) handleUpdateBookStatus(ctx context.Context, input *UpdateBookStatusInput) (*StatusOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Book.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return toStatusOutput(input.ID, status), nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Book.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("book deleted"), nil
}
