package lemmy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/bot"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, zap.NewNop(), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNewValidatesDomain(t *testing.T) {
	t.Parallel()

	_, err := New("  ", zap.NewNop())
	assert.Error(t, err)

	c, err := New("lemmy.example.org", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://lemmy.example.org", c.base)
}

func TestLoginStoresToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/user/login", r.URL.Path)

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bot", req.UsernameOrEmail)
		assert.Equal(t, "hunter2", req.Password)

		json.NewEncoder(w).Encode(loginResponse{JWT: "token-123"})
	}))

	require.NoError(t, c.Login(context.Background(), "bot", "hunter2"))
	assert.Equal(t, "token-123", c.jwt)
}

func TestLoginEmptyTokenIsError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(loginResponse{})
	}))

	assert.Error(t, c.Login(context.Background(), "bot", "hunter2"))
}

func TestListPosts(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/post/list", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "New", q.Get("sort"))
		assert.Equal(t, "Local", q.Get("type_"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(listResponse{Posts: []bot.PostView{
			{Post: bot.Post{ID: 7, ApID: "https://l.example/post/7", URL: "https://news.example.com/a"}},
			{Post: bot.Post{ID: 8, Deleted: true}, Saved: true},
		}})
	}))
	c.jwt = "token-123"

	views, err := c.ListPosts(context.Background(), bot.ListQuery{Sort: "New", Listing: "Local", Page: 3})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(7), views[0].Post.ID)
	assert.True(t, views[1].Post.Deleted)
	assert.True(t, views[1].Saved)
}

func TestCreateComment(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/comment", r.URL.Path)

		var req createCommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.PostID)
		assert.Contains(t, req.Content, "summary")

		var resp createCommentResponse
		resp.CommentView.Comment.ID = 99
		json.NewEncoder(w).Encode(resp)
	}))

	require.NoError(t, c.CreateComment(context.Background(), 7, "a summary comment"))
}

func TestCreateCommentEmptyResponseIsError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(createCommentResponse{})
	}))

	assert.Error(t, c.CreateComment(context.Background(), 7, "body"))
}

func TestNon2xxIsError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	_, err := c.ListPosts(context.Background(), bot.ListQuery{Page: 1})
	assert.Error(t, err)
}
