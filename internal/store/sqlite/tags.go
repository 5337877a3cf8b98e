package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nyeweb/nyeweb-server/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx so tag helpers can run
// inside an entity's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// findOrCreateTag looks up a tag by its exact name, creating it if missing.
// A concurrent insert losing the UNIQUE race falls back to re-reading the
// winner's row.
func findOrCreateTag(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("query tag: %w", err)
	}

	res, err := q.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			if err := q.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id); err != nil {
				return 0, fmt.Errorf("re-query tag: %w", err)
			}
			return id, nil
		}
		return 0, fmt.Errorf("insert tag: %w", err)
	}
	return res.LastInsertId()
}

// normalizeTagNames trims whitespace, drops blanks, and removes duplicates
// while preserving first-seen order.
func normalizeTagNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// attachTags associates the given tag names with an entity row via its
// junction table. Inserts are idempotent.
func attachTags(ctx context.Context, q querier, junction, fkColumn string, entityID int64, names []string) error {
	for _, name := range normalizeTagNames(names) {
		tagID, err := findOrCreateTag(ctx, q, name)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+junction+` (`+fkColumn+`, tag_id) VALUES (?, ?)`,
			entityID, tagID,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", junction, err)
		}
	}
	return nil
}

// replaceTags removes every existing tag association for an entity row and
// attaches the new set.
func replaceTags(ctx context.Context, q querier, junction, fkColumn string, entityID int64, names []string) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM `+junction+` WHERE `+fkColumn+` = ?`, entityID,
	); err != nil {
		return fmt.Errorf("delete %s: %w", junction, err)
	}
	return attachTags(ctx, q, junction, fkColumn, entityID, names)
}

// tagsFor returns the tag names attached to an entity row in creation order.
func tagsFor(ctx context.Context, q querier, junction, fkColumn string, entityID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN `+junction+` jt ON jt.tag_id = t.id
		WHERE jt.`+fkColumn+` = ?
		ORDER BY t.id ASC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", junction, err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return tags, nil
}

// tagCounts aggregates how many published rows of a parent table reference
// each tag through its junction table.
func (s *Store) tagCounts(ctx context.Context, junction, parent, fkColumn string) (*domain.TagCounts, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name, COUNT(*) FROM tags t
		JOIN `+junction+` jt ON jt.tag_id = t.id
		JOIN `+parent+` p ON p.id = jt.`+fkColumn+`
		WHERE p.status = ?
		GROUP BY t.id
		ORDER BY t.id ASC`, int(domain.StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("query %s counts: %w", junction, err)
	}
	defer rows.Close()

	counts := &domain.TagCounts{
		Tags:   []string{},
		Counts: map[string]int{},
	}
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan tag count: %w", err)
		}
		counts.Tags = append(counts.Tags, name)
		counts.Counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}

// ArticleTagCounts returns per-tag usage counts across published articles.
func (s *Store) ArticleTagCounts(ctx context.Context) (*domain.TagCounts, error) {
	return s.tagCounts(ctx, "article_tags", "articles", "article_id")
}

// ProjectTagCounts returns per-tag usage counts across published projects.
func (s *Store) ProjectTagCounts(ctx context.Context) (*domain.TagCounts, error) {
	return s.tagCounts(ctx, "project_tags", "projects", "project_id")
}

// BookTagCounts returns per-tag usage counts across published books.
func (s *Store) BookTagCounts(ctx context.Context) (*domain.TagCounts, error) {
	return s.tagCounts(ctx, "book_tags", "books", "book_id")
}

// FigureTagCounts returns per-tag usage counts across published figures.
func (s *Store) FigureTagCounts(ctx context.Context) (*domain.TagCounts, error) {
	return s.tagCounts(ctx, "figure_tags", "figures", "figure_id")
}

// ToolTagCounts returns per-tag usage counts across published tools.
func (s *Store) ToolTagCounts(ctx context.Context) (*domain.TagCounts, error) {
	return s.tagCounts(ctx, "tool_tags", "tools", "tool_id")
}
