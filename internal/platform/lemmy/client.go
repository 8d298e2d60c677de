// Package lemmy is a minimal client for the Lemmy HTTP API v3, covering
// only the calls the bot needs: login, post listing, comment creation.
package lemmy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/bot"
)

const apiPath = "/api/v3"

// Client talks to one Lemmy instance. It is not safe for concurrent use:
// Login stores the JWT used by subsequent calls, and the pipeline is
// strictly sequential anyway.
type Client struct {
	base   string
	http   *http.Client
	jwt    string
	logger *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a Client for the given instance domain. A bare domain gets an
// https scheme; an explicit http:// base is kept (test servers).
func New(domain string, logger *zap.Logger, opts ...Option) (*Client, error) {
	domain = strings.TrimSpace(strings.TrimSuffix(domain, "/"))
	if domain == "" {
		return nil, fmt.Errorf("instance domain is required")
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	if _, err := url.Parse(domain); err != nil {
		return nil, fmt.Errorf("parse instance domain: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		base:   domain,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

// Login authenticates and stores the session token. An empty token in a
// 2xx response is reported as an error so retry policies treat it as a
// failed attempt.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/login", loginRequest{
		UsernameOrEmail: username,
		Password:        password,
	}, nil, &resp)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.JWT == "" {
		return fmt.Errorf("login: empty token in response")
	}
	c.jwt = resp.JWT
	c.logger.Debug("authenticated with instance", zap.String("instance", c.base))
	return nil
}

type listResponse struct {
	Posts []bot.PostView `json:"posts"`
}

// ListPosts fetches one page of the feed.
func (c *Client) ListPosts(ctx context.Context, q bot.ListQuery) ([]bot.PostView, error) {
	params := url.Values{}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Listing != "" {
		params.Set("type_", q.Listing)
	}
	if q.Community != "" {
		params.Set("community_name", q.Community)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	var resp listResponse
	if err := c.doJSON(ctx, http.MethodGet, "/post/list", nil, params, &resp); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return resp.Posts, nil
}

type createCommentRequest struct {
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
}

type createCommentResponse struct {
	CommentView struct {
		Comment struct {
			ID int64 `json:"id"`
		} `json:"comment"`
	} `json:"comment_view"`
}

// CreateComment publishes body as a top-level comment on postID.
func (c *Client) CreateComment(ctx context.Context, postID int64, body string) error {
	var resp createCommentResponse
	err := c.doJSON(ctx, http.MethodPost, "/comment", createCommentRequest{
		PostID:  postID,
		Content: body,
	}, nil, &resp)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	if resp.CommentView.Comment.ID == 0 {
		return fmt.Errorf("create comment: empty comment in response")
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload any, params url.Values, out any) error {
	reqURL := c.base + apiPath + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.jwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.jwt)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, endpoint, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
