package comments

import (
	"context"
	"fmt"
	"log/slog"

	"blogapi/internal/domain"
	"blogapi/internal/events"
	"blogapi/internal/storage"
)

type Service interface {
	List(ctx context.Context, postID int64) ([]domain.Comment, error)
	Create(ctx context.Context, callerID int64, req CreateCommentRequest) (*domain.Comment, error)
	Update(ctx context.Context, callerID, commentID int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, callerID, commentID int64) (*domain.Comment, error)
}

type service struct {
	repo      storage.CommentRepository
	publisher events.Publisher
	logger    *slog.Logger
	strict    bool
}

// NewService creates a comments service. With strict set, a comment can only
// be written under the caller's own user id.
func NewService(repo storage.CommentRepository, publisher events.Publisher, logger *slog.Logger, strict bool) Service {
	return &service{repo: repo, publisher: publisher, logger: logger, strict: strict}
}

func (s *service) List(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *service) Create(ctx context.Context, callerID int64, req CreateCommentRequest) (*domain.Comment, error) {
	if s.strict && req.UserID != callerID {
		return nil, domain.ErrIdentityMismatch
	}

	comment, err := s.repo.CreateComment(ctx, req.PostID, req.UserID, req.Content)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
		slog.Int64("user_id", comment.UserID),
	)
	s.publish(ctx, events.New(events.CommentCreated, comment.PostID, callerID, comment))
	return comment, nil
}

func (s *service) Update(ctx context.Context, callerID, commentID int64, content string) (*domain.Comment, error) {
	comment, err := s.repo.UpdateComment(ctx, commentID, content)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Comment updated",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
		slog.Int64("updated_by", callerID),
	)
	s.publish(ctx, events.New(events.CommentUpdated, comment.PostID, callerID, comment))
	return comment, nil
}

func (s *service) Delete(ctx context.Context, callerID, commentID int64) (*domain.Comment, error) {
	comment, err := s.repo.DeleteComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Comment deleted",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID),
		slog.Int64("deleted_by", callerID),
	)
	s.publish(ctx, events.New(events.CommentDeleted, comment.PostID, callerID, comment))
	return comment, nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("type", e.Type),
			slog.Int64("post_id", e.PostID),
			slog.String("error", err.Error()),
		)
	}
}
