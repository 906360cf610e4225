package view

import (
	"context"
	"errors"
	"fmt"

	"employeedir/app/models"

	"golang.org/x/net/html"
)

// ErrCommentsUnavailable is returned when the comments of a post could not
// be fetched. The section cannot be assembled without them.
var ErrCommentsUnavailable = errors.New("comments unavailable")

// CreateComments builds one article per comment: the commenter name, the
// body and the sender line. nil comments yield nil.
func CreateComments(comments []models.Comment) []*html.Node {
	if comments == nil {
		return nil
	}
	articles := make([]*html.Node, 0, len(comments))
	for _, comment := range comments {
		article := NewElement("article")
		Append(article,
			CreateElement("h3", comment.Name, ""),
			CreateElement("p", comment.Body, ""),
			CreateElement("p", comment.From(), ""),
		)
		articles = append(articles, article)
	}
	return articles
}

// BuildCommentsSection returns the hidden comments section of a post. A zero
// postID returns nil without fetching. A post with no comments still gets
// an empty, hidden section.
func (r *Renderer) BuildCommentsSection(ctx context.Context, postID int) (*html.Node, error) {
	if postID == 0 {
		return nil, nil
	}

	section := NewElement("section")
	SetPostID(section, postID)
	Select(section).AddClass("comments", "hide")

	comments := r.fetcher.FetchPostComments(ctx, postID)
	if comments == nil {
		return nil, fmt.Errorf("post %d: %w", postID, ErrCommentsUnavailable)
	}
	Append(section, CreateComments(comments)...)
	return section, nil
}
