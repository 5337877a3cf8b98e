package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

const toolColumns = `id, title, description, url, status`

func scanTool(scanner interface{ Scan(dest ...any) error }) (*domain.Tool, error) {
	var (
		t      domain.Tool
		status int
	)

	err := scanner.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.URL,
		&status,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)

	return &t, nil
}

// CreateTool inserts a tool together with its tag associations in one
// transaction.
func (s *Store) CreateTool(ctx context.Context, t *domain.Tool, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO tools (title, description, url, status)
		VALUES (?, ?, ?, ?)`,
		t.Title,
		t.Description,
		t.URL,
		int(t.Status),
	)
	if err != nil {
		return fmt.Errorf("insert tool: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	if err := attachTags(ctx, tx, "tool_tags", "tool_id", t.ID, tags); err != nil {
		return err
	}
	t.Tags = normalizeTagNames(tags)

	return tx.Commit()
}

// GetToolByID retrieves a tool by its ID.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) GetToolByID(ctx context.Context, id int64) (*domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)

	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Tags, err = tagsFor(ctx, s.db, "tool_tags", "tool_id", t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTools returns tools newest-first.
// When publishedOnly is set, drafts and recycled tools are excluded.
func (s *Store) ListTools(ctx context.Context, publishedOnly bool) ([]*domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`
	var args []any
	if publishedOnly {
		query += ` WHERE status = ?`
		args = append(args, int(domain.StatusPublished))
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tools := []*domain.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tools {
		t.Tags, err = tagsFor(ctx, s.db, "tool_tags", "tool_id", t.ID)
		if err != nil {
			return nil, err
		}
	}

	return tools, nil
}

// UpdateTool rewrites a tool row and, when tags is non-nil, replaces its tag
// associations in the same transaction.
func (s *Store) UpdateTool(ctx context.Context, t *domain.Tool, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tools SET title = ?, description = ?, url = ?, status = ?
		WHERE id = ?`,
		t.Title,
		t.Description,
		t.URL,
		int(t.Status),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update tool: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if tags != nil {
		if err := replaceTags(ctx, tx, "tool_tags", "tool_id", t.ID, tags); err != nil {
			return err
		}
		t.Tags = normalizeTagNames(tags)
	}

	return tx.Commit()
}

// UpdateToolStatus changes only the status column of a tool.
func (s *Store) UpdateToolStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tools SET status = ? WHERE id = ?`, int(status), id)
	if err != nil {
		return fmt.Errorf("update tool status: %w", err)
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

// DeleteTool removes a tool and its tag associations.
func (s *Store) DeleteTool(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tool_tags WHERE tool_id = ?`, id); err != nil {
		return fmt.Errorf("delete tool_tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tools WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}
