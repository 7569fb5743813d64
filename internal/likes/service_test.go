package likes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/domain"
	"blogapi/internal/events"
)

type mockRepo struct {
	createFunc func(ctx context.Context, postID, userID int64) (*domain.Like, error)
	deleteFunc func(ctx context.Context, postID, userID int64) (*domain.Like, error)
	countFunc  func(ctx context.Context, postID int64) (int64, error)
}

func (m *mockRepo) CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	return m.createFunc(ctx, postID, userID)
}

func (m *mockRepo) DeleteLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	return m.deleteFunc(ctx, postID, userID)
}

func (m *mockRepo) CountLikes(ctx context.Context, postID int64) (int64, error) {
	return m.countFunc(ctx, postID)
}

type capturePublisher struct{ published []events.Event }

func (p *capturePublisher) Publish(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func TestService_StrictIdentityBlocksBeforeStore(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(context.Context, int64, int64) (*domain.Like, error) {
			t.Fatal("store must not be reached")
			return nil, nil
		},
	}
	svc := NewService(repo, events.Noop{}, slog.New(slog.NewTextHandler(io.Discard, nil)), true)

	_, err := svc.Give(context.Background(), 1, LikeRequest{PostID: 3, UserID: 2})
	assert.ErrorIs(t, err, domain.ErrIdentityMismatch)
}

func TestService_GivePublishes(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(_ context.Context, postID, userID int64) (*domain.Like, error) {
			return &domain.Like{ID: 10, PostID: postID, UserID: userID}, nil
		},
	}
	pub := &capturePublisher{}
	svc := NewService(repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	like, err := svc.Give(context.Background(), 1, LikeRequest{PostID: 3, UserID: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 10, like.ID)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.LikeGiven, pub.published[0].Type)
	assert.EqualValues(t, 3, pub.published[0].PostID)
	assert.EqualValues(t, 1, pub.published[0].ActorID)
}

func TestService_CountWrapsErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockRepo{
		countFunc: func(context.Context, int64) (int64, error) { return 0, boom },
	}
	svc := NewService(repo, events.Noop{}, slog.New(slog.NewTextHandler(io.Discard, nil)), true)

	_, err := svc.Count(context.Background(), 4)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "post 4")
}

// logEntries decodes one JSON log record per line.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestService_LogsMutations(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(_ context.Context, postID, userID int64) (*domain.Like, error) {
			return &domain.Like{ID: 7, PostID: postID, UserID: userID}, nil
		},
		deleteFunc: func(_ context.Context, postID, userID int64) (*domain.Like, error) {
			return &domain.Like{ID: 7, PostID: postID, UserID: userID}, nil
		},
	}
	var buf bytes.Buffer
	svc := NewService(repo, events.Noop{}, slog.New(slog.NewJSONHandler(&buf, nil)), true)

	_, err := svc.Give(context.Background(), 2, LikeRequest{PostID: 3, UserID: 2})
	require.NoError(t, err)
	_, err = svc.Remove(context.Background(), 2, LikeRequest{PostID: 3, UserID: 2})
	require.NoError(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "Like given", entries[0]["msg"])
	assert.Equal(t, "Like removed", entries[1]["msg"])
	for _, entry := range entries {
		assert.Equal(t, "INFO", entry["level"])
		assert.EqualValues(t, 7, entry["like_id"])
		assert.EqualValues(t, 3, entry["post_id"])
		assert.EqualValues(t, 2, entry["user_id"])
	}
}

func TestService_FailedGiveIsNotLogged(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(context.Context, int64, int64) (*domain.Like, error) {
			return nil, domain.ErrAlreadyLiked
		},
	}
	var buf bytes.Buffer
	svc := NewService(repo, events.Noop{}, slog.New(slog.NewJSONHandler(&buf, nil)), true)

	_, err := svc.Give(context.Background(), 2, LikeRequest{PostID: 3, UserID: 2})
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
	assert.Empty(t, buf.String())
}
