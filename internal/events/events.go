// Package events publishes blog activity (posts, comments, likes) for
// downstream consumers such as feeds and notifications.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"
	LikeGiven      = "like.given"
	LikeRemoved    = "like.removed"
)

// Event is one activity record. Payload holds the affected entity.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PostID     int64     `json:"post_id"`
	ActorID    int64     `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, postID, actorID int64, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		PostID:     postID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
