package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nyeweb/nyeweb-server/internal/domain"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

const adminColumns = `id, username, password_hash, login_token, last_login, created_at`

func scanAdmin(scanner interface{ Scan(dest ...any) error }) (*domain.Admin, error) {
	var (
		a         domain.Admin
		token     sql.NullString
		lastLogin sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&token,
		&lastLogin,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.LoginToken = token.String
	a.LastLogin, err = parseNullableTime(lastLogin)
	if err != nil {
		return nil, err
	}
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateAdmin inserts a new admin account.
// Returns store.ErrAlreadyExists on duplicate username.
func (s *Store) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, login_token, last_login, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Username,
		a.PasswordHash,
		nullString(a.LoginToken),
		nullTimePtr(a.LastLogin),
		formatTime(a.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetAdminByUsername retrieves an admin account by username.
// Returns store.ErrNotFound if no such account exists.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)

	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAdminByToken retrieves the admin account holding the given login token.
// Returns store.ErrNotFound if no account holds it.
func (s *Store) GetAdminByToken(ctx context.Context, token string) (*domain.Admin, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE login_token = ?`, token)

	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SetAdminToken stores a fresh login token on an admin account and records
// the login time. Any previous token is overwritten.
func (s *Store) SetAdminToken(ctx context.Context, id int64, token string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE admins SET login_token = ?, last_login = ? WHERE id = ?`,
		token, formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("set admin token: %w", err)
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

// ClearAdminToken invalidates a login token. Clearing a token that is no
// longer current is not an error.
func (s *Store) ClearAdminToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE admins SET login_token = NULL WHERE login_token = ?`, token)
	if err != nil {
		return fmt.Errorf("clear admin token: %w", err)
	}
	return nil
}
