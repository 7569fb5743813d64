// Package postgres implements the storage repositories on PostgreSQL via pgx.
package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"blogapi/internal/database"
	"blogapi/internal/domain"
	"blogapi/internal/storage"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"

	likesUniqueConstraint = "likes_post_user_unique"
)

// Store implements storage.Store.
type Store struct {
	db database.Service
}

var _ storage.Store = (*Store)(nil)

// New creates a store over an open database service
func New(db database.Service) *Store {
	return &Store{db: db}
}

// translate maps constraint violations onto domain errors. Anything else is
// returned unchanged.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeForeignKeyViolation:
		switch {
		case strings.HasSuffix(pgErr.ConstraintName, "post_id_fkey"):
			return domain.ErrPostNotFound
		case strings.HasSuffix(pgErr.ConstraintName, "user_id_fkey"):
			return domain.ErrUserNotFound
		}
	case codeUniqueViolation:
		if pgErr.ConstraintName == likesUniqueConstraint {
			return domain.ErrAlreadyLiked
		}
	}
	return err
}
