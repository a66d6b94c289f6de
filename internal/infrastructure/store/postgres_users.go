package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/artisan-market/internal/domain/user"
	"github.com/lib/pq"
)

// PostgresUserStore implements user.Store on PostgreSQL. The unique index on
// email backs up the service-level duplicate check against races.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, email, password_hash, name, role, is_active, bio, craft, region, created_at, updated_at`

func (s *PostgresUserStore) Insert(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Active,
		u.Bio, u.Craft, u.Region, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// Update persists name and profile changes. Email, role and active flag are
// not updatable through this path.
func (s *PostgresUserStore) Update(ctx context.Context, u *user.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, bio = $3, craft = $4, region = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.Name, u.Bio, u.Craft, u.Region, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (s *PostgresUserStore) get(ctx context.Context, query, arg string) (*user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active,
		&u.Bio, &u.Craft, &u.Region, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
