package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/events"
	"blogapi/internal/storage/inmemory"
)

func TestService_LogsMutations(t *testing.T) {
	store := inmemory.New()
	author := store.AddUser("alice", "alice@example.com")

	var buf bytes.Buffer
	svc := NewService(store, store, events.Noop{}, slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := context.Background()

	post, err := svc.Create(ctx, author.ID, "t", "c")
	require.NoError(t, err)
	_, err = svc.Update(ctx, post.ID, author.ID, "t2", "c2")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, post.ID, author.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	wantMsgs := []string{"Post created", "Post updated", "Post deleted"}
	for i, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, wantMsgs[i], entry["msg"])
		assert.EqualValues(t, post.ID, entry["post_id"])
	}
}
