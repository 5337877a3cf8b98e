package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

const figureColumns = `id, title, description, filename, status`

func scanFigure(scanner interface{ Scan(dest ...any) error }) (*domain.Figure, error) {
	var (
		f      domain.Figure
		status int
	)

	err := scanner.Scan(
		&f.ID,
		&f.Title,
		&f.Description,
		&f.Filename,
		&status,
	)
	if err != nil {
		return nil, err
	}
	f.Status = domain.Status(status)

	return &f, nil
}

// CreateFigure inserts a figure together with its tag associations in one
// transaction.
func (s *Store) CreateFigure(ctx context.Context, f *domain.Figure, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO figures (title, description, filename, status)
		VALUES (?, ?, ?, ?)`,
		f.Title,
		f.Description,
		f.Filename,
		int(f.Status),
	)
	if err != nil {
		return fmt.Errorf("insert figure: %w", err)
	}
	f.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	if err := attachTags(ctx, tx, "figure_tags", "figure_id", f.ID, tags); err != nil {
		return err
	}
	f.Tags = normalizeTagNames(tags)

	return tx.Commit()
}

// GetFigureByID retrieves a figure by its ID.
// Returns store.ErrNotFound if the figure does not exist.
func (s *Store) GetFigureByID(ctx context.Context, id int64) (*domain.Figure, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+figureColumns+` FROM figures WHERE id = ?`, id)

	f, err := scanFigure(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f.Tags, err = tagsFor(ctx, s.db, "figure_tags", "figure_id", f.ID)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListFigures returns figures newest-first.
// When publishedOnly is set, drafts and recycled figures are excluded.
func (s *Store) ListFigures(ctx context.Context, publishedOnly bool) ([]*domain.Figure, error) {
	query := `SELECT ` + figureColumns + ` FROM figures`
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

	figures := []*domain.Figure{}
	for rows.Next() {
		f, err := scanFigure(rows)
		if err != nil {
			return nil, err
		}
		figures = append(figures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, f := range figures {
		f.Tags, err = tagsFor(ctx, s.db, "figure_tags", "figure_id", f.ID)
		if err != nil {
			return nil, err
		}
	}

	return figures, nil
}

// UpdateFigure rewrites a figure row and, when tags is non-nil, replaces its
// tag associations in the same transaction.
func (s *Store) UpdateFigure(ctx context.Context, f *domain.Figure, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE figures SET title = ?, description = ?, filename = ?, status = ?
		WHERE id = ?`,
		f.Title,
		f.Description,
		f.Filename,
		int(f.Status),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("update figure: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if tags != nil {
		if err := replaceTags(ctx, tx, "figure_tags", "figure_id", f.ID, tags); err != nil {
			return err
		}
		f.Tags = normalizeTagNames(tags)
	}

	return tx.Commit()
}

// UpdateFigureStatus changes only the status column of a figure.
func (s *Store) UpdateFigureStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE figures SET status = ? WHERE id = ?`, int(status), id)
	if err != nil {
		return fmt.Errorf("update figure status: %w", err)
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

// DeleteFigure removes a figure and its tag associations.
func (s *Store) DeleteFigure(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM figure_tags WHERE figure_id = ?`, id); err != nil {
		return fmt.Errorf("delete figure_tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM figures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete figure: %w", err)
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
