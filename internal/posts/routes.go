package posts

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the post endpoints on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	posts := api.Group("/posts")
	{
		posts.GET("", h.ListPosts)                     // GET /posts?page=1&per_page=15
		posts.POST("", h.CreatePost)                   // POST /posts
		posts.GET("/user/:user_id", h.ListUserPosts)   // GET /posts/user/:user_id
		posts.GET("/likes/:user_id", h.ListLikedPosts) // GET /posts/likes/:user_id
		posts.GET("/:id", h.GetPost)                   // GET /posts/:id
		posts.PUT("/:id", h.UpdatePost)                // PUT /posts/:id
		posts.DELETE("/:id", h.DeletePost)             // DELETE /posts/:id
	}
}
