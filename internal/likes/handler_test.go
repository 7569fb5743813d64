package likes

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
	"blogapi/internal/storage/inmemory"
)

var testSecret = []byte("likes-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, users int) (*gin.Engine, *inmemory.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := inmemory.New()
	for i := 0; i < users; i++ {
		store.AddUser("user", "user@example.com")
	}
	_, err := store.CreatePost(context.Background(), 1, "Hello", "World")
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api")
	api.Use(auth.Middleware(testSecret, logger))
	RegisterRoutes(api, NewHandler(NewService(store, events.Noop{}, logger, true), logger))
	return r, store
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

func likeBody(postID, userID int64) string {
	b, _ := json.Marshal(LikeRequest{PostID: postID, UserID: userID})
	return string(b)
}

func count(t *testing.T, r *gin.Engine) int64 {
	t.Helper()
	w := request(t, r, 1, http.MethodGet, "/api/posts/1/likes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.PostID)
	return resp.Likes
}

func TestGiveAndRemove_Counts(t *testing.T) {
	const n = 4
	r, _ := setupRouter(t, n)

	for uid := int64(1); uid <= n; uid++ {
		w := request(t, r, uid, http.MethodPost, "/api/likes", likeBody(1, uid))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var like domain.Like
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &like))
		assert.Positive(t, like.ID)
		assert.Equal(t, uid, like.UserID)
	}
	assert.EqualValues(t, n, count(t, r))

	w := request(t, r, 2, http.MethodDelete, "/api/likes", likeBody(1, 2))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, n-1, count(t, r))
}

func TestGive_Duplicate(t *testing.T) {
	r, _ := setupRouter(t, 1)

	w := request(t, r, 1, http.MethodPost, "/api/likes", likeBody(1, 1))
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, 1, http.MethodPost, "/api/likes", likeBody(1, 1))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 1, count(t, r))
}

func TestGive_Errors(t *testing.T) {
	tests := []struct {
		name   string
		caller int64
		body   string
		want   int
	}{
		{"unknown post", 1, likeBody(9, 1), http.StatusNotFound},
		{"identity mismatch", 1, likeBody(1, 2), http.StatusForbidden},
		{"missing user_id", 1, `{"post_id":1}`, http.StatusBadRequest},
		{"malformed", 1, `{"post_id":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter(t, 2)

			w := request(t, r, tt.caller, http.MethodPost, "/api/likes", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Zero(t, count(t, r))
		})
	}
}

func TestRemove_QueryParams(t *testing.T) {
	r, store := setupRouter(t, 1)
	_, err := store.CreateLike(context.Background(), 1, 1)
	require.NoError(t, err)

	w := request(t, r, 1, http.MethodDelete, "/api/likes?post_id=1&user_id=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, count(t, r))

	w = request(t, r, 1, http.MethodDelete, "/api/likes?post_id=1&user_id=1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemove_Errors(t *testing.T) {
	r, _ := setupRouter(t, 2)

	w := request(t, r, 1, http.MethodDelete, "/api/likes", likeBody(1, 1))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(t, r, 1, http.MethodDelete, "/api/likes", likeBody(1, 2))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, r, 1, http.MethodDelete, "/api/likes", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCount_UnknownPostIsZero(t *testing.T) {
	r, _ := setupRouter(t, 1)

	w := request(t, r, 1, http.MethodGet, "/api/posts/99/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"post_id":99,"likes":0}`, w.Body.String())

	w = request(t, r, 1, http.MethodGet, "/api/posts/x/likes", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
