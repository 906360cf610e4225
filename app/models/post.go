package models

import (
	"errors"
	"fmt"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if p == nil {
		return errors.New("post cannot be nil")
	}
	return validate.Struct(p)
}

// IDLine returns the "Post ID" line shown in a post article.
func (p *Post) IDLine() string {
	return fmt.Sprintf("Post ID: %d", p.ID)
}

// SetAuthor sets the owning user and updates the UserID
func (p *Post) SetAuthor(user *User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	p.UserID = user.ID
	return nil
}
