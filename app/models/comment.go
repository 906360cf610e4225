package models

import "errors"

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if c == nil {
		return errors.New("comment cannot be nil")
	}
	return validate.Struct(c)
}

// From returns the sender line shown under a comment.
func (c *Comment) From() string {
	return "From: " + c.Email
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}
	c.PostID = post.ID
	return nil
}
