package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"blogapi/internal/domain"
	"blogapi/internal/storage"
)

const postColumns = `id, user_id, title, content, created_at, updated_at`

// postViewSelect joins the author and computes both counts per post row.
const postViewSelect = `
	SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at,
	       u.id, u.name, u.email, u.created_at, u.updated_at,
	       lc.total, cc.total
	FROM posts p
	LEFT JOIN users u ON u.id = p.user_id
	LEFT JOIN LATERAL (SELECT COUNT(*) AS total FROM likes l WHERE l.post_id = p.id) lc ON TRUE
	LEFT JOIN LATERAL (SELECT COUNT(*) AS total FROM comments c WHERE c.post_id = p.id) cc ON TRUE`

func scanPost(row pgx.Row) (*domain.Post, error) {
	post := &domain.Post{}
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func scanPostView(row pgx.Row) (*domain.PostView, error) {
	var (
		view                     domain.PostView
		userID                   *int64
		name, email              *string
		userCreated, userUpdated *time.Time
	)
	err := row.Scan(
		&view.ID,
		&view.UserID,
		&view.Title,
		&view.Content,
		&view.CreatedAt,
		&view.UpdatedAt,
		&userID,
		&name,
		&email,
		&userCreated,
		&userUpdated,
		&view.CountLikes,
		&view.CountComments,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		view.User = &domain.User{
			ID:        *userID,
			Name:      deref(name),
			Email:     deref(email),
			CreatedAt: derefTime(userCreated),
			UpdatedAt: derefTime(userUpdated),
		}
	}
	return &view, nil
}

// CreatePost inserts a new post owned by userID
func (s *Store) CreatePost(ctx context.Context, userID int64, title, content string) (*domain.Post, error) {
	const q = `
		INSERT INTO posts (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + postColumns

	post, err := scanPost(s.db.QueryRow(ctx, q, userID, title, content))
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", translate(err))
	}
	return post, nil
}

// GetPost returns the read model of a single post
func (s *Store) GetPost(ctx context.Context, id int64) (*domain.PostView, error) {
	view, err := scanPostView(s.db.QueryRow(ctx, postViewSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return view, nil
}

// ListPosts returns one page of posts matching filter, ordered by id.
func (s *Store) ListPosts(ctx context.Context, filter storage.PostFilter, page storage.PageArgs) ([]domain.PostView, int64, error) {
	where, args := postFilterClause(filter)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := postViewSelect + where + ` ORDER BY p.id`
	if page.Paginated() {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, page.PerPage, page.Offset())
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	views := []domain.PostView{}
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	return views, total, nil
}

func postFilterClause(filter storage.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("p.user_id = $%d", len(args)))
	}
	if filter.LikedBy != nil {
		args = append(args, *filter.LikedBy)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM likes lk WHERE lk.post_id = p.id AND lk.user_id = $%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpdatePost overwrites title and content in a single statement.
func (s *Store) UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	const q = `
		UPDATE posts
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + postColumns

	post, err := scanPost(s.db.QueryRow(ctx, q, title, content, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post; its comments and likes cascade.
func (s *Store) DeletePost(ctx context.Context, id int64) (*domain.Post, error) {
	const q = `DELETE FROM posts WHERE id = $1 RETURNING ` + postColumns

	post, err := scanPost(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return post, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
