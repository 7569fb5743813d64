package comments

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the comment endpoints on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	r := api.Group("/comments")

	r.GET("", h.List)
	r.POST("", h.Create)
	r.PUT("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
}
