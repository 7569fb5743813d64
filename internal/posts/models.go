package posts

// CreatePostRequest represents the request body for creating a new post.
// The author is the authenticated caller, not a body field.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=255"`
	Content string `json:"content" binding:"required,notblank,max=10000"`
}

// UpdatePostRequest represents the request body for updating a post
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=255"`
	Content string `json:"content" binding:"required,notblank,max=10000"`
}
