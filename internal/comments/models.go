package comments

// ListCommentsQuery selects the post whose comments are listed.
type ListCommentsQuery struct {
	PostID int64 `form:"post_id" binding:"required,min=1"`
}

// CreateCommentRequest represents the request body for creating a comment.
type CreateCommentRequest struct {
	PostID  int64  `json:"post_id" binding:"required,min=1"`
	UserID  int64  `json:"user_id" binding:"required,min=1"`
	Content string `json:"content" binding:"required,notblank,max=10000"`
}

// UpdateCommentRequest represents the request body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank,max=10000"`
}
