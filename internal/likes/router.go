package likes

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the like endpoints on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	api.POST("/likes", h.Give)
	api.DELETE("/likes", h.Remove)
	api.GET("/posts/:id/likes", h.Count)
}
