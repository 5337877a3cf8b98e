package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

const bookColumns = `id, title, description, cover, filename, status`

func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b      domain.Book
		status int
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.Cover,
		&b.Filename,
		&status,
	)
	if err != nil {
		return nil, err
	}
	b.Status = domain.Status(status)

	return &b, nil
}

// CreateBook inserts a book together with its tag associations in one
// transaction.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO books (title, description, cover, filename, status)
		VALUES (?, ?, ?, ?, ?)`,
		b.Title,
		b.Description,
		b.Cover,
		b.Filename,
		int(b.Status),
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	b.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	if err := attachTags(ctx, tx, "book_tags", "book_id", b.ID, tags); err != nil {
		return err
	}
	b.Tags = normalizeTagNames(tags)

	return tx.Commit()
}

// GetBookByID retrieves a book by its ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBookByID(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Tags, err = tagsFor(ctx, s.db, "book_tags", "book_id", b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns books newest-first.
// When publishedOnly is set, drafts and recycled books are excluded.
func (s *Store) ListBooks(ctx context.Context, publishedOnly bool) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
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

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range books {
		b.Tags, err = tagsFor(ctx, s.db, "book_tags", "book_id", b.ID)
		if err != nil {
			return nil, err
		}
	}

	return books, nil
}

// UpdateBook rewrites a book row and, when tags is non-nil, replaces its tag
// associations in the same transaction.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE books SET title = ?, description = ?, cover = ?, filename = ?, status = ?
		WHERE id = ?`,
		b.Title,
		b.Description,
		b.Cover,
		b.Filename,
		int(b.Status),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if tags != nil {
		if err := replaceTags(ctx, tx, "book_tags", "book_id", b.ID, tags); err != nil {
			return err
		}
		b.Tags = normalizeTagNames(tags)
	}

	return tx.Commit()
}

// UpdateBookStatus changes only the status column of a book.
func (s *Store) UpdateBookStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET status = ? WHERE id = ?`, int(status), id)
	if err != nil {
		return fmt.Errorf("update book status: %w", err)
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

// DeleteBook removes a book and its tag associations.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_tags WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("delete book_tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
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
