package comments

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/auth"
	"blogapi/internal/domain"
	"blogapi/internal/events"
	"blogapi/internal/httpx"
	"blogapi/internal/storage/inmemory"
)

var testSecret = []byte("comments-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, strict bool) (*gin.Engine, *inmemory.Store, *domain.Post) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := inmemory.New()
	alice := store.AddUser("alice", "alice@example.com")
	store.AddUser("bob", "bob@example.com")

	post, err := store.CreatePost(context.Background(), alice.ID, "Hello", "World")
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api")
	api.Use(auth.Middleware(testSecret, logger))
	RegisterRoutes(api, NewHandler(NewService(store, events.Noop{}, logger, strict), logger))
	return r, store, post
}

func request(t *testing.T, r *gin.Engine, userID int64, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	r, _, post := setupRouter(t, true)

	w := request(t, r, 2, http.MethodPost, "/api/comments", `{"post_id":1,"user_id":2,"content":"Nice post"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var c domain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Positive(t, c.ID)
	assert.Equal(t, post.ID, c.PostID)
	assert.EqualValues(t, 2, c.UserID)
	assert.Equal(t, "Nice post", c.Content)
}

func TestCreateComment_Errors(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		caller int64
		body   string
		want   int
	}{
		{"content too long", true, 2, `{"post_id":1,"user_id":2,"content":"` + strings.Repeat("a", 10001) + `"}`, http.StatusBadRequest},
		{"blank content", true, 2, `{"post_id":1,"user_id":2,"content":"  "}`, http.StatusBadRequest},
		{"missing post_id", true, 2, `{"user_id":2,"content":"c"}`, http.StatusBadRequest},
		{"unknown post", true, 2, `{"post_id":9,"user_id":2,"content":"c"}`, http.StatusNotFound},
		{"identity mismatch", true, 2, `{"post_id":1,"user_id":1,"content":"c"}`, http.StatusForbidden},
		{"unknown user when not strict", false, 2, `{"post_id":1,"user_id":77,"content":"c"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store, post := setupRouter(t, tt.strict)

			w := request(t, r, tt.caller, http.MethodPost, "/api/comments", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			comments, err := store.ListComments(context.Background(), post.ID)
			require.NoError(t, err)
			assert.Empty(t, comments)
		})
	}
}

func TestCreateComment_LenientIdentity(t *testing.T) {
	r, _, _ := setupRouter(t, false)

	w := request(t, r, 2, http.MethodPost, "/api/comments", `{"post_id":1,"user_id":1,"content":"on behalf"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListComments(t *testing.T) {
	r, store, post := setupRouter(t, true)
	for _, content := range []string{"first", "second"} {
		_, err := store.CreateComment(context.Background(), post.ID, 2, content)
		require.NoError(t, err)
	}

	w := request(t, r, 1, http.MethodGet, "/api/comments?post_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []domain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)

	w = request(t, r, 1, http.MethodGet, "/api/comments?post_id=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, q := range []string{"", "?post_id=abc", "?post_id=0"} {
		w = request(t, r, 1, http.MethodGet, "/api/comments"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestUpdateComment(t *testing.T) {
	r, store, post := setupRouter(t, true)
	c, err := store.CreateComment(context.Background(), post.ID, 2, "draft")
	require.NoError(t, err)

	w := request(t, r, 2, http.MethodPut, "/api/comments/1", `{"content":"final"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "final", updated.Content)

	w = request(t, r, 2, http.MethodPut, "/api/comments/1", `{"content":"`+strings.Repeat("b", 10001)+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "max", resp.Fields["content"])

	w = request(t, r, 2, http.MethodPut, "/api/comments/5", `{"content":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteComment_Twice(t *testing.T) {
	r, store, post := setupRouter(t, true)
	_, err := store.CreateComment(context.Background(), post.ID, 2, "bye")
	require.NoError(t, err)

	w := request(t, r, 2, http.MethodDelete, "/api/comments/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"bye"`)

	w = request(t, r, 2, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
