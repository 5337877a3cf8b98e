package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/slug"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// articleColumns is the ordered list of columns selected in article queries.
// Must match the scan order in scanArticle.
const articleColumns = `id, title, slug, category, summary, date, status`

// scanArticle scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Article. Tags are loaded separately.
func scanArticle(scanner interface{ Scan(dest ...any) error }) (*domain.Article, error) {
	var (
		a      domain.Article
		date   sql.NullString
		status int
	)

	err := scanner.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Category,
		&a.Summary,
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
		a.Date = *d
	}
	a.Status = domain.Status(status)

	return &a, nil
}

// CreateArticle inserts an article together with its tag associations in one
// transaction. a.Slug is treated as a base; when it collides with an existing
// article the stored slug gets a numeric suffix, and a.Slug and a.ID are
// updated to the stored values.
func (s *Store) CreateArticle(ctx context.Context, a *domain.Article, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for attempt := 0; ; attempt++ {
		candidate := slug.WithSuffix(a.Slug, attempt)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO articles (title, slug, category, summary, date, status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.Title,
			candidate,
			a.Category,
			a.Summary,
			nullTime(a.Date),
			int(a.Status),
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert article: %w", err)
		}
		a.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		if attempt > 0 {
			s.logger.Debug("resolved slug collision", "slug", candidate)
		}
		a.Slug = candidate
		break
	}

	if err := attachTags(ctx, tx, "article_tags", "article_id", a.ID, tags); err != nil {
		return err
	}
	a.Tags = normalizeTagNames(tags)

	return tx.Commit()
}

// GetArticleByID retrieves an article by its ID.
// Returns store.ErrNotFound if the article does not exist.
func (s *Store) GetArticleByID(ctx context.Context, id int64) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return s.finishArticle(ctx, row)
}

// GetArticleBySlug retrieves an article by its slug.
// Returns store.ErrNotFound if the article does not exist.
func (s *Store) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)
	return s.finishArticle(ctx, row)
}

// GetArticleByCategoryAndSlug retrieves an article matching both its category
// path and slug. Returns store.ErrNotFound if no article matches.
func (s *Store) GetArticleByCategoryAndSlug(ctx context.Context, category, slug string) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE category = ? AND slug = ?`, category, slug)
	return s.finishArticle(ctx, row)
}

func (s *Store) finishArticle(ctx context.Context, row *sql.Row) (*domain.Article, error) {
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Tags, err = tagsFor(ctx, s.db, "article_tags", "article_id", a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListArticles returns articles ordered newest-first by date.
// When publishedOnly is set, drafts and recycled articles are excluded.
func (s *Store) ListArticles(ctx context.Context, publishedOnly bool) ([]*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
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

	articles := []*domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, a := range articles {
		a.Tags, err = tagsFor(ctx, s.db, "article_tags", "article_id", a.ID)
		if err != nil {
			return nil, err
		}
	}

	return articles, nil
}

// UpdateArticle rewrites an article row and, when tags is non-nil, replaces
// its tag associations in the same transaction. The slug gets a numeric
// suffix when it collides with a different article.
func (s *Store) UpdateArticle(ctx context.Context, a *domain.Article, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for attempt := 0; ; attempt++ {
		candidate := slug.WithSuffix(a.Slug, attempt)
		res, err := tx.ExecContext(ctx, `
			UPDATE articles SET title = ?, slug = ?, category = ?, summary = ?, date = ?, status = ?
			WHERE id = ?`,
			a.Title,
			candidate,
			a.Category,
			a.Summary,
			nullTime(a.Date),
			int(a.Status),
			a.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("update article: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		a.Slug = candidate
		break
	}

	if tags != nil {
		if err := replaceTags(ctx, tx, "article_tags", "article_id", a.ID, tags); err != nil {
			return err
		}
		a.Tags = normalizeTagNames(tags)
	}

	return tx.Commit()
}

// UpdateArticleStatus changes only the status column of an article.
// Returns store.ErrNotFound if the article does not exist.
func (s *Store) UpdateArticleStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET status = ? WHERE id = ?`, int(status), id)
	if err != nil {
		return fmt.Errorf("update article status: %w", err)
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

// DeleteArticle removes an article and its tag associations.
// Returns store.ErrNotFound if the article does not exist.
func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("delete article_tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
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
