package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Company is the employer block embedded in a user record.
type Company struct {
	Name        string `json:"name" validate:"required"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs,omitempty"`
}

// User represents an employee listed in the directory.
type User struct {
	ID       int     `json:"id" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Company  Company `json:"company"`
}

// Post represents a post written by a user.
type Post struct {
	ID     int    `json:"id" validate:"required,gt=0"`
	UserID int    `json:"userId" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body"`
}

// Comment represents a comment left on a post.
type Comment struct {
	ID     int    `json:"id" validate:"gte=0"`
	PostID int    `json:"postId" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Body   string `json:"body"`
}
