package likes

// LikeRequest identifies a (post, user) pair. It binds from a JSON body or
// from query/form parameters.
type LikeRequest struct {
	PostID int64 `json:"post_id" form:"post_id" binding:"required,min=1"`
	UserID int64 `json:"user_id" form:"user_id" binding:"required,min=1"`
}

// CountResponse is the like counter of a post.
type CountResponse struct {
	PostID int64 `json:"post_id"`
	Likes  int64 `json:"likes"`
}
