package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/domain"
)

func (s *Server) registerTimelineRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTimeline",
		Method:      http.MethodGet,
		Path:        "/api/timeline",
		Summary:     "List timeline entries",
		Description: "Returns all timeline entries, newest first.",
		Tags:        []string{"Timeline"},
	}, s.handleListTimeline)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTimelineEntry",
		Method:        http.MethodPost,
		Path:          "/api/timeline",
		Summary:       "Create timeline entry",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Timeline"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTimelineEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTimelineEntry",
		Method:      http.MethodPut,
		Path:        "/api/timeline/{id}",
		Summary:     "Update timeline entry",
		Tags:        []string{"Timeline"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTimelineEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTimelineEntry",
		Method:      http.MethodDelete,
		Path:        "/api/timeline/{id}",
		Summary:     "Delete timeline entry",
		Tags:        []string{"Timeline"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTimelineEntry)
}

// === DTOs ===

// timelineTimestampFormat is the wire format for timeline timestamps.
const timelineTimestampFormat = "2006-01-02 15:04:05"

// TimelineEntryResponse contains timeline data in API responses.
type TimelineEntryResponse struct {
	ID        int64  `json:"id" doc:"Entry ID"`
	Timestamp string `json:"timestamp" doc:"YYYY-MM-DD HH:MM:SS"`
	Content   string `json:"content" doc:"Entry text"`
}

func toTimelineEntryResponse(e *domain.TimelineEntry) TimelineEntryResponse {
	return TimelineEntryResponse{
		ID:        e.ID,
		Timestamp: e.Timestamp.UTC().Format(timelineTimestampFormat),
		Content:   e.Content,
	}
}

// ListTimelineOutput wraps the timeline for huma.
type ListTimelineOutput struct {
	Body struct {
		Entries []TimelineEntryResponse `json:"entries" doc:"Entries, newest first"`
	}
}

// TimelineEntryOutput wraps a single entry for huma.
type TimelineEntryOutput struct {
	Body TimelineEntryResponse
}

// CreateTimelineEntryRequest is the request body for creating an entry.
type CreateTimelineEntryRequest struct {
	Timestamp string `json:"timestamp,omitempty" doc:"YYYY-MM-DD HH:MM:SS; defaults to now"`
	Content   string `json:"content" doc:"Entry text"`
}

// CreateTimelineEntryInput wraps the create request for huma.
type CreateTimelineEntryInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateTimelineEntryRequest
}

// UpdateTimelineEntryRequest is the request body for updating an entry.
type UpdateTimelineEntryRequest struct {
	Timestamp *string `json:"timestamp,omitempty" doc:"YYYY-MM-DD HH:MM:SS"`
	Content   *string `json:"content,omitempty" doc:"Entry text"`
}

// UpdateTimelineEntryInput wraps the update request for huma.
type UpdateTimelineEntryInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Entry ID"`
	Body          UpdateTimelineEntryRequest
}

// === Handlers ===

func (s *Server) handleListTimeline(ctx context.Context, _ *struct{}) (*ListTimelineOutput, error) {
	entries, err := s.services.Timeline.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListTimelineOutput{}
	out.Body.Entries = make([]TimelineEntryResponse, len(entries))
	for i, e := range entries {
		out.Body.Entries[i] = toTimelineEntryResponse(e)
	}
	return out, nil
}

func (s *Server) handleCreateTimelineEntry(ctx context.Context, input *CreateTimelineEntryInput) (*TimelineEntryOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	e, err := s.services.Timeline.Create(ctx, input.Body.Timestamp, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &TimelineEntryOutput{Body: toTimelineEntryResponse(e)}, nil
}

func (s *Server) handleUpdateTimelineEntry(ctx context.Context, input *UpdateTimelineEntryInput) (*TimelineEntryOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	e, err := s.services.Timeline.Update(ctx, input.ID, input.Body.Timestamp, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &TimelineEntryOutput{Body: toTimelineEntryResponse(e)}, nil
}

func (s *Server) handleDeleteTimelineEntry(ctx context.Context, input *DeleteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Timeline.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return toMessageOutput("timeline entry deleted"), nil
}
