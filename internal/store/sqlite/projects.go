package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/slug"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

const projectColumns = `id, title, slug, summary, date, status`

func scanProject(scanner interface{ Scan(dest ...any) error }) (*domain.Project, error) {
	var (
		p      domain.Project
		date   sql.NullString
		status int
	)

	err := scanner.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Summary,
		&date,
		&status,
	)
	if err != nil {
		return nil, err
	}

	d, err := parseNullableTime(date)
	if err != nil {
		return nil, err
	}
	if d != nil {
		p.Date = *d
	}
	p.Status = domain.Status(status)

	return &p, nil
}

// CreateProject inserts a project together with its tag associations in one
// transaction. Slug collisions get a numeric suffix.
func (s *Store) CreateProject(ctx context.Context, p *domain.Project, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for attempt := 0; ; attempt++ {
		candidate := slug.WithSuffix(p.Slug, attempt)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO projects (title, slug, summary, date, status)
			VALUES (?, ?, ?, ?, ?)`,
			p.Title,
			candidate,
			p.Summary,
			nullTime(p.Date),
			int(p.Status),
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert project: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		if attempt > 0 {
			s.logger.Debug("resolved slug collision", "slug", candidate)
		}
		p.Slug = candidate
		break
	}

	if err := attachTags(ctx, tx, "project_tags", "project_id", p.ID, tags); err != nil {
		return err
	}
	p.Tags = normalizeTagNames(tags)

	return tx.Commit()
}

// GetProjectByID retrieves a project by its ID.
// Returns store.ErrNotFound if the project does not exist.
func (s *Store) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return s.finishProject(ctx, row)
}

// GetProjectBySlug retrieves a project by its slug.
// Returns store.ErrNotFound if the project does not exist.
func (s *Store) GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	return s.finishProject(ctx, row)
}

func (s *Store) finishProject(ctx context.Context, row *sql.Row) (*domain.Project, error) {
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Tags, err = tagsFor(ctx, s.db, "project_tags", "project_id", p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns projects ordered newest-first by date.
// When publishedOnly is set, drafts and recycled projects are excluded.
func (s *Store) ListProjects(ctx context.Context, publishedOnly bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if publishedOnly {
		query += ` WHERE status = ?`
		args = append(args, int(domain.StatusPublished))
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range projects {
		p.Tags, err = tagsFor(ctx, s.db, "project_tags", "project_id", p.ID)
		if err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// UpdateProject rewrites a project row and, when tags is non-nil, replaces
// its tag associations in the same transaction.
func (s *Store) UpdateProject(ctx context.Context, p *domain.Project, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for attempt := 0; ; attempt++ {
		candidate := slug.WithSuffix(p.Slug, attempt)
		res, err := tx.ExecContext(ctx, `
			UPDATE projects SET title = ?, slug = ?, summary = ?, date = ?, status = ?
			WHERE id = ?`,
			p.Title,
			candidate,
			p.Summary,
			nullTime(p.Date),
			int(p.Status),
			p.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("update project: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		p.Slug = candidate
		break
	}

	if tags != nil {
		if err := replaceTags(ctx, tx, "project_tags", "project_id", p.ID, tags); err != nil {
			return err
		}
		p.Tags = normalizeTagNames(tags)
	}

	return tx.Commit()
}

// UpdateProjectStatus changes only the status column of a project.
func (s *Store) UpdateProjectStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET status = ? WHERE id = ?`, int(status), id)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
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

// DeleteProject removes a project and its tag associations.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_tags WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("delete project_tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
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
