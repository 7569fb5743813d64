package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogapi/internal/domain"
)

const commentColumns = `id, post_id, user_id, content, created_at, updated_at`

func scanComment(row pgx.Row) (*domain.Comment, error) {
	c := &domain.Comment{}
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CreateComment(ctx context.Context, postID, userID int64, content string) (*domain.Comment, error) {
	const q = `
		INSERT INTO comments (post_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, q, postID, userID, content))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", translate(err))
	}
	return c, nil
}

func (s *Store) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY id`

	rows, err := s.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	const q = `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, q, content, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) (*domain.Comment, error) {
	const q = `DELETE FROM comments WHERE id = $1 RETURNING ` + commentColumns

	c, err := scanComment(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return c, nil
}
