// Package storage defines the repositories the resources are built on.
// Implementations live in the postgres and inmemory subpackages and report
// absent or conflicting rows with the sentinel errors from package domain.
package storage

import (
	"context"

	"blogapi/internal/domain"
)

// PageArgs selects a page of a listing. A zero PerPage means "everything".
type PageArgs struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip.
func (p PageArgs) Offset() int {
	if p.PerPage <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Paginated reports whether a LIMIT applies.
func (p PageArgs) Paginated() bool {
	return p.PerPage > 0
}

// PostFilter narrows a post listing. Nil fields do not filter.
type PostFilter struct {
	AuthorID *int64
	LikedBy  *int64
}

type PostRepository interface {
	CreatePost(ctx context.Context, userID int64, title, content string) (*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.PostView, error)
	// ListPosts returns the requested page ordered by id and the total number
	// of posts matching the filter.
	ListPosts(ctx context.Context, filter PostFilter, page PageArgs) ([]domain.PostView, int64, error)
	UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error)
	// DeletePost removes the post and returns its last stored state.
	DeletePost(ctx context.Context, id int64) (*domain.Post, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, postID, userID int64, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) (*domain.Comment, error)
}

type LikeRepository interface {
	CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error)
	// DeleteLike removes the first like matching both ids.
	DeleteLike(ctx context.Context, postID, userID int64) (*domain.Like, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// Store is the full set of repositories a backend provides.
type Store interface {
	PostRepository
	CommentRepository
	LikeRepository
	UserRepository
}
