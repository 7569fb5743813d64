package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogapi/internal/domain"
)

// GetUser reads a user row. Users are written by the identity service.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`

	u := &domain.User{}
	err := s.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
