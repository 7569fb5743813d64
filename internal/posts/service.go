package posts

import (
	"context"
	"fmt"
	"log/slog"

	"blogapi/internal/domain"
	"blogapi/internal/events"
	"blogapi/internal/storage"
)

// Service handles business logic for posts
type Service interface {
	List(ctx context.Context, page storage.PageArgs) ([]domain.PostView, int64, error)
	Get(ctx context.Context, id int64) (*domain.PostView, error)
	ListByUser(ctx context.Context, userID int64, page storage.PageArgs) ([]domain.PostView, int64, error)
	ListLikedByUser(ctx context.Context, userID int64, page storage.PageArgs) ([]domain.PostView, int64, error)
	Create(ctx context.Context, authorID int64, title, content string) (*domain.Post, error)
	Update(ctx context.Context, id, actorID int64, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, id, actorID int64) (*domain.Post, error)
}

type service struct {
	posts     storage.PostRepository
	users     storage.UserRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new posts service
func NewService(posts storage.PostRepository, users storage.UserRepository, publisher events.Publisher, logger *slog.Logger) Service {
	return &service{posts: posts, users: users, publisher: publisher, logger: logger}
}

func (s *service) List(ctx context.Context, page storage.PageArgs) ([]domain.PostView, int64, error) {
	views, total, err := s.posts.ListPosts(ctx, storage.PostFilter{}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return views, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.PostView, error) {
	return s.posts.GetPost(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID int64, page storage.PageArgs) ([]domain.PostView, int64, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	views, total, err := s.posts.ListPosts(ctx, storage.PostFilter{AuthorID: &userID}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts by user %d: %w", userID, err)
	}
	return views, total, nil
}

func (s *service) ListLikedByUser(ctx context.Context, userID int64, page storage.PageArgs) ([]domain.PostView, int64, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	views, total, err := s.posts.ListPosts(ctx, storage.PostFilter{LikedBy: &userID}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts liked by user %d: %w", userID, err)
	}
	return views, total, nil
}

func (s *service) Create(ctx context.Context, authorID int64, title, content string) (*domain.Post, error) {
	post, err := s.posts.CreatePost(ctx, authorID, title, content)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", authorID),
	)
	s.publish(ctx, events.New(events.PostCreated, post.ID, authorID, post))
	return post, nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, title, content string) (*domain.Post, error) {
	post, err := s.posts.UpdatePost(ctx, id, title, content)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Post updated",
		slog.Int64("post_id", post.ID),
		slog.Int64("updated_by", actorID),
	)
	s.publish(ctx, events.New(events.PostUpdated, post.ID, actorID, post))
	return post, nil
}

func (s *service) Delete(ctx context.Context, id, actorID int64) (*domain.Post, error) {
	post, err := s.posts.DeletePost(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Post deleted",
		slog.Int64("post_id", post.ID),
		slog.Int64("deleted_by", actorID),
	)
	s.publish(ctx, events.New(events.PostDeleted, post.ID, actorID, post))
	return post, nil
}

// publish delivers e best effort. The write has already committed, so a
// broker failure is logged rather than returned.
func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("type", e.Type),
			slog.Int64("post_id", e.PostID),
			slog.String("error", err.Error()),
		)
	}
}
