package likes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/auth"
	"blogapi/internal/httpx"
)

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// POST /likes  {post_id, user_id}
func (h *Handler) Give(c *gin.Context) {
	callerID, _ := auth.UserID(c)

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	like, err := h.svc.Give(c.Request.Context(), callerID, req)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to like post", err)
		return
	}
	c.JSON(http.StatusOK, like)
}

// DELETE /likes  {post_id, user_id} as JSON body or query
func (h *Handler) Remove(c *gin.Context) {
	callerID, _ := auth.UserID(c)

	var req LikeRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	like, err := h.svc.Remove(c.Request.Context(), callerID, req)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to remove like", err)
		return
	}
	c.JSON(http.StatusOK, like)
}

// GET /posts/:id/likes
func (h *Handler) Count(c *gin.Context) {
	postID, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.svc.Count(c.Request.Context(), postID)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to count likes", err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{PostID: postID, Likes: n})
}
