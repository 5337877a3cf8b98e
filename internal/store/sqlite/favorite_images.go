package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// CreateFavoriteImage inserts a favorite image record.
func (s *Store) CreateFavoriteImage(ctx context.Context, img *domain.FavoriteImage) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO favorite_images (filename) VALUES (?)`, img.Filename)
	if err != nil {
		return fmt.Errorf("insert favorite image: %w", err)
	}
	img.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetFavoriteImageByID retrieves a favorite image record by its ID.
// Returns store.ErrNotFound if the record does not exist.
func (s *Store) GetFavoriteImageByID(ctx context.Context, id int64) (*domain.FavoriteImage, error) {
	var img domain.FavoriteImage
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename FROM favorite_images WHERE id = ?`, id,
	).Scan(&img.ID, &img.Filename)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListFavoriteImages returns all favorite image records newest-first.
func (s *Store) ListFavoriteImages(ctx context.Context) ([]*domain.FavoriteImage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename FROM favorite_images ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*domain.FavoriteImage{}
	for rows.Next() {
		var img domain.FavoriteImage
		if err := rows.Scan(&img.ID, &img.Filename); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

// DeleteFavoriteImage removes a favorite image record.
// Returns store.ErrNotFound if the record does not exist.
func (s *Store) DeleteFavoriteImage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorite_images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete favorite image: %w", err)
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
