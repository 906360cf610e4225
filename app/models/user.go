package models

import (
	"errors"
	"fmt"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	return validate.Struct(u)
}

// Byline returns the author line shown under a post.
func (u *User) Byline() string {
	return fmt.Sprintf("Author: %s with %s", u.Name, u.Company.Name)
}
