package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogapi/internal/domain"
)

const likeColumns = `id, post_id, user_id, created_at, updated_at`

func scanLike(row pgx.Row) (*domain.Like, error) {
	l := &domain.Like{}
	if err := row.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	const q = `
		INSERT INTO likes (post_id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + likeColumns

	l, err := scanLike(s.db.QueryRow(ctx, q, postID, userID))
	if err != nil {
		return nil, fmt.Errorf("insert like: %w", translate(err))
	}
	return l, nil
}

func (s *Store) DeleteLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	const q = `
		DELETE FROM likes
		WHERE id = (
			SELECT id FROM likes
			WHERE post_id = $1 AND user_id = $2
			ORDER BY id
			LIMIT 1
		)
		RETURNING ` + likeColumns

	l, err := scanLike(s.db.QueryRow(ctx, q, postID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	return l, nil
}

func (s *Store) CountLikes(ctx context.Context, postID int64) (int64, error) {
	var cnt int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return cnt, nil
}
