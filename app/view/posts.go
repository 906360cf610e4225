package view

import (
	"context"
	"errors"
	"fmt"

	"employeedir/app/models"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how BuildPosts fetches per-post data.
type Strategy string

const (
	// Sequential builds one post at a time, in input order.
	Sequential Strategy = "sequential"
	// Concurrent builds posts in parallel and reassembles them in input order.
	Concurrent Strategy = "concurrent"
)

const (
	ShowComments = "Show Comments"
	HideComments = "Hide Comments"
)

// ErrAuthorUnavailable is returned when a post's author could not be
// fetched. The author lines cannot be built without it and the whole render
// fails.
var ErrAuthorUnavailable = errors.New("author unavailable")

// Fetcher is the part of the API client the renderer needs.
type Fetcher interface {
	FetchUser(ctx context.Context, userID int) *models.User
	FetchPostComments(ctx context.Context, postID int) []models.Comment
}

// Renderer builds post articles, fetching authors and comments as it goes.
type Renderer struct {
	fetcher     Fetcher
	strategy    Strategy
	concurrency int
	log         *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithStrategy selects the fetch strategy. Unknown values fall back to
// Sequential.
func WithStrategy(s Strategy, concurrency int) Option {
	return func(r *Renderer) {
		if s == Concurrent {
			r.strategy = Concurrent
		}
		if concurrency > 0 {
			r.concurrency = concurrency
		}
	}
}

// WithLogger sets the renderer's logger
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// NewRenderer creates a Renderer reading from fetcher
func NewRenderer(fetcher Fetcher, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher:     fetcher,
		strategy:    Sequential,
		concurrency: 4,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strategy reports the active fetch strategy.
func (r *Renderer) Strategy() Strategy {
	return r.strategy
}

// BuildPosts returns one article per post, in input order. nil posts
// return nil. Any post whose author or comments cannot be fetched fails the
// whole build.
func (r *Renderer) BuildPosts(ctx context.Context, posts []models.Post) ([]*html.Node, error) {
	if posts == nil {
		return nil, nil
	}
	if r.strategy == Concurrent {
		return r.buildConcurrent(ctx, posts)
	}

	articles := make([]*html.Node, 0, len(posts))
	for _, post := range posts {
		article, err := r.buildPost(ctx, post)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (r *Renderer) buildConcurrent(ctx context.Context, posts []models.Post) ([]*html.Node, error) {
	articles := make([]*html.Node, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			article, err := r.buildPost(gctx, post)
			if err != nil {
				return err
			}
			articles[i] = article
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return articles, nil
}

// buildPost assembles title, body, id line, author line, catch phrase,
// toggle button and comments section, in that order.
func (r *Renderer) buildPost(ctx context.Context, post models.Post) (*html.Node, error) {
	article := NewElement("article")
	title := CreateElement("h2", post.Title, "")
	body := CreateElement("p", post.Body, "")
	idLine := CreateElement("p", post.IDLine(), "")

	author := r.fetcher.FetchUser(ctx, post.UserID)
	if author == nil {
		r.log.Debug("post has no author", zap.Int("post_id", post.ID), zap.Int("user_id", post.UserID))
		return nil, fmt.Errorf("post %d: %w", post.ID, ErrAuthorUnavailable)
	}
	authorLine := CreateElement("p", author.Byline(), "")
	catchPhrase := CreateElement("p", author.Company.CatchPhrase, "")

	button := CreateElement("button", ShowComments, "")
	SetPostID(button, post.ID)

	Append(article, title, body, idLine, authorLine, catchPhrase, button)

	section, err := r.BuildCommentsSection(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if section != nil {
		article.AppendChild(section)
	}
	return article, nil
}
