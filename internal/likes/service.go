package likes

import (
	"context"
	"fmt"
	"log/slog"

	"blogapi/internal/domain"
	"blogapi/internal/events"
	"blogapi/internal/storage"
)

type Service interface {
	Give(ctx context.Context, callerID int64, req LikeRequest) (*domain.Like, error)
	Remove(ctx context.Context, callerID int64, req LikeRequest) (*domain.Like, error)
	Count(ctx context.Context, postID int64) (int64, error)
}

type service struct {
	repo      storage.LikeRepository
	publisher events.Publisher
	logger    *slog.Logger
	strict    bool
}

// NewService creates a likes service. With strict set, callers can only give
// or remove likes under their own user id.
func NewService(repo storage.LikeRepository, publisher events.Publisher, logger *slog.Logger, strict bool) Service {
	return &service{repo: repo, publisher: publisher, logger: logger, strict: strict}
}

func (s *service) Give(ctx context.Context, callerID int64, req LikeRequest) (*domain.Like, error) {
	if s.strict && req.UserID != callerID {
		return nil, domain.ErrIdentityMismatch
	}

	like, err := s.repo.CreateLike(ctx, req.PostID, req.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Like given",
		slog.Int64("like_id", like.ID),
		slog.Int64("post_id", like.PostID),
		slog.Int64("user_id", like.UserID),
	)
	s.publish(ctx, events.New(events.LikeGiven, like.PostID, callerID, like))
	return like, nil
}

func (s *service) Remove(ctx context.Context, callerID int64, req LikeRequest) (*domain.Like, error) {
	if s.strict && req.UserID != callerID {
		return nil, domain.ErrIdentityMismatch
	}

	like, err := s.repo.DeleteLike(ctx, req.PostID, req.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Like removed",
		slog.Int64("like_id", like.ID),
		slog.Int64("post_id", like.PostID),
		slog.Int64("user_id", like.UserID),
	)
	s.publish(ctx, events.New(events.LikeRemoved, like.PostID, callerID, like))
	return like, nil
}

func (s *service) Count(ctx context.Context, postID int64) (int64, error) {
	n, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes of post %d: %w", postID, err)
	}
	return n, nil
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
