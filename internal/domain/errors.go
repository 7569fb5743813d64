package domain

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyLiked    = errors.New("post already liked by this user")
	// ErrIdentityMismatch is returned when a body-supplied user_id differs
	// from the authenticated caller.
	ErrIdentityMismatch = errors.New("user_id does not match the authenticated user")
)
