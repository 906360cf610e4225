package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"employeedir/app/models"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public REST host the directory reads from.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client performs the read-only GET requests the directory needs. Every
// failure is logged and reported to the caller as an absent (nil) value.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for fetch failures
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUsers lists all users.
func (c *Client) FetchUsers(ctx context.Context) []models.User {
	var users []models.User
	if !c.get(ctx, "/users", nil, &users) {
		return nil
	}
	return users
}

// FetchUser fetches one user. A zero id returns nil without a request.
func (c *Client) FetchUser(ctx context.Context, userID int) *models.User {
	if userID == 0 {
		return nil
	}
	var user models.User
	if !c.get(ctx, "/users/"+strconv.Itoa(userID), nil, &user) {
		return nil
	}
	return &user
}

// FetchUserPosts lists the posts of one user, filtered server side.
// A zero id returns nil without a request.
func (c *Client) FetchUserPosts(ctx context.Context, userID int) []models.Post {
	if userID == 0 {
		return nil
	}
	var posts []models.Post
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	if !c.get(ctx, "/posts", query, &posts) {
		return nil
	}
	return posts
}

// FetchPostComments lists the comments of one post, filtered server side.
// A zero id returns nil without a request.
func (c *Client) FetchPostComments(ctx context.Context, postID int) []models.Comment {
	if postID == 0 {
		return nil
	}
	var comments []models.Comment
	query := url.Values{"postId": {strconv.Itoa(postID)}}
	if !c.get(ctx, "/comments", query, &comments) {
		return nil
	}
	return comments
}

// get decodes the JSON body of GET path?query into out. It reports false,
// after logging, on any transport, status or decode failure.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) bool {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if err := c.do(ctx, target, out); err != nil {
		if ctx.Err() != nil {
			c.log.Debug("fetch cancelled", zap.String("url", target), zap.Error(err))
			return false
		}
		c.log.Error("fetch failed", zap.String("url", target), zap.Error(err))
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
