package comments

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

func (h *Handler) List(c *gin.Context) {
	var q ListCommentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.BindError(c, err)
		return
	}

	comments, err := h.svc.List(c.Request.Context(), q.PostID)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to list comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) Create(c *gin.Context) {
	callerID, _ := auth.UserID(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), callerID, req)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to create comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) Update(c *gin.Context) {
	callerID, _ := auth.UserID(c)

	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), callerID, id, req.Content)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to update comment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) Delete(c *gin.Context) {
	callerID, _ := auth.UserID(c)

	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.svc.Delete(c.Request.Context(), callerID, id)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to delete comment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
