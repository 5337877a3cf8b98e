package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

func scanTimelineEntry(scanner interface{ Scan(dest ...any) error }) (*domain.TimelineEntry, error) {
	var (
		e  domain.TimelineEntry
		ts string
	)

	err := scanner.Scan(&e.ID, &ts, &e.Content)
	if err != nil {
		return nil, err
	}
	e.Timestamp, err = parseTime(ts)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateTimelineEntry inserts a timeline entry.
func (s *Store) CreateTimelineEntry(ctx context.Context, e *domain.TimelineEntry) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO timeline (timestamp, content) VALUES (?, ?)`,
		formatTime(e.Timestamp), e.Content)
	if err != nil {
		return fmt.Errorf("insert timeline entry: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetTimelineEntryByID retrieves a timeline entry by its ID.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) GetTimelineEntryByID(ctx context.Context, id int64) (*domain.TimelineEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, content FROM timeline WHERE id = ?`, id)

	e, err := scanTimelineEntry(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListTimeline returns all timeline entries newest-first.
func (s *Store) ListTimeline(ctx context.Context) ([]*domain.TimelineEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, content FROM timeline ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.TimelineEntry{}
	for rows.Next() {
		e, err := scanTimelineEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// UpdateTimelineEntry rewrites a timeline entry.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) UpdateTimelineEntry(ctx context.Context, e *domain.TimelineEntry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE timeline SET timestamp = ?, content = ? WHERE id = ?`,
		formatTime(e.Timestamp), e.Content, e.ID)
	if err != nil {
		return fmt.Errorf("update timeline entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTimelineEntry removes a timeline entry.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) DeleteTimelineEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM timeline WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete timeline entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
