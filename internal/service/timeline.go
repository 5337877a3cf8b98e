package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// timestampFormat is the wire format for timeline timestamps.
const timestampFormat = "2006-01-02 15:04:05"

// TimelineService manages dated timeline entries.
type TimelineService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTimelineService creates a new timeline service.
func NewTimelineService(store store.Store, logger *slog.Logger) *TimelineService {
	return &TimelineService{store: store, logger: logger}
}

// parseTimestamp accepts an empty string as "now" and rejects anything
// that is not in timestampFormat.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, domainerrors.Validationf("invalid timestamp %q, expected YYYY-MM-DD HH:MM:SS", s)
	}
	return t.UTC(), nil
}

// List returns all timeline entries, newest first.
func (s *TimelineService) List(ctx context.Context) ([]*domain.TimelineEntry, error) {
	return s.store.ListTimeline(ctx)
}

// Create stores a new timeline entry. An empty timestamp means now.
func (s *TimelineService) Create(ctx context.Context, timestamp, content string) (*domain.TimelineEntry, error) {
	ts, err := parseTimestamp(timestamp)
	if err != nil {
		return nil, err
	}

	e := &domain.TimelineEntry{Timestamp: ts, Content: content}
	if err := s.store.CreateTimelineEntry(ctx, e); err != nil {
		return nil, mapStoreErr(err, "timeline entry not found")
	}

	s.logger.Info("timeline entry created", "id", e.ID)
	return e, nil
}

// Update applies a partial update; nil fields stay untouched.
func (s *TimelineService) Update(ctx context.Context, id int64, timestamp, content *string) (*domain.TimelineEntry, error) {
	e, err := s.store.GetTimelineEntryByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "timeline entry not found")
	}

	if timestamp != nil {
		if e.Timestamp, err = parseTimestamp(*timestamp); err != nil {
			return nil, err
		}
	}
	if content != nil {
		e.Content = *content
	}

	if err := s.store.UpdateTimelineEntry(ctx, e); err != nil {
		return nil, mapStoreErr(err, "timeline entry not found")
	}

	s.logger.Info("timeline entry updated", "id", e.ID)
	return e, nil
}

// Delete removes a timeline entry.
func (s *TimelineService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTimelineEntry(ctx, id); err != nil {
		return mapStoreErr(err, "timeline entry not found")
	}
	s.logger.Info("timeline entry deleted", "id", id)
	return nil
}
