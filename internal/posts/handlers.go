package posts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/auth"
	"blogapi/internal/domain"
	"blogapi/internal/httpx"
	"blogapi/internal/storage"
)

// Handler handles HTTP requests for posts
type Handler struct {
	service Service
	pager   httpx.Pager
	logger  *slog.Logger
}

// NewHandler creates a new posts handler
func NewHandler(service Service, pager httpx.Pager, logger *slog.Logger) *Handler {
	return &Handler{service: service, pager: pager, logger: logger}
}

// ListPosts handles GET /posts
func (h *Handler) ListPosts(c *gin.Context) {
	page, ok := h.pager.Parse(c)
	if !ok {
		return
	}

	views, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to list posts", err)
		return
	}
	httpx.List(c, views, total, page)
}

// GetPost handles GET /posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to retrieve post", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListUserPosts handles GET /posts/user/:user_id
func (h *Handler) ListUserPosts(c *gin.Context) {
	h.listForUser(c, h.service.ListByUser)
}

// ListLikedPosts handles GET /posts/likes/:user_id
func (h *Handler) ListLikedPosts(c *gin.Context) {
	h.listForUser(c, h.service.ListLikedByUser)
}

type userListing func(ctx context.Context, userID int64, page storage.PageArgs) ([]domain.PostView, int64, error)

func (h *Handler) listForUser(c *gin.Context, list userListing) {
	userID, ok := httpx.ParseID(c, "user_id")
	if !ok {
		return
	}
	page, ok := h.pager.Parse(c)
	if !ok {
		return
	}

	views, total, err := list(c.Request.Context(), userID, page)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to list user posts", err)
		return
	}
	httpx.List(c, views, total, page)
}

// CreatePost handles POST /posts
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		httpx.Abort(c, http.StatusUnauthorized, "Unauthorized: user not authenticated")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to create post", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /posts/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, _ := auth.UserID(c)

	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to update post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id
func (h *Handler) DeletePost(c *gin.Context) {
	userID, _ := auth.UserID(c)

	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	post, err := h.service.Delete(c.Request.Context(), id, userID)
	if err != nil {
		httpx.Fail(c, h.logger, "Failed to delete post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}
