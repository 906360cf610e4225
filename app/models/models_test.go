package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    &User{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Company: Company{Name: "Romaguera-Crona"}},
			wantErr: false,
		},
		{
			name:    "missing id",
			user:    &User{Name: "Leanne Graham", Company: Company{Name: "Romaguera-Crona"}},
			wantErr: true,
		},
		{
			name:    "bad email",
			user:    &User{ID: 1, Name: "Leanne Graham", Email: "not-an-email", Company: Company{Name: "Romaguera-Crona"}},
			wantErr: true,
		},
		{
			name:    "missing company",
			user:    &User{ID: 1, Name: "Leanne Graham"},
			wantErr: true,
		},
		{
			name:    "nil user",
			user:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{name: "valid post", post: &Post{ID: 1, UserID: 1, Title: "sunt aut facere"}, wantErr: false},
		{name: "missing user", post: &Post{ID: 1, Title: "sunt aut facere"}, wantErr: true},
		{name: "missing title", post: &Post{ID: 1, UserID: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentValidation(t *testing.T) {
	valid := &Comment{ID: 1, PostID: 1, Name: "id labore ex", Email: "Eliseo@gardner.biz", Body: "laudantium"}
	assert.NoError(t, valid.Validate())

	noPost := &Comment{ID: 1, Name: "id labore ex", Email: "Eliseo@gardner.biz"}
	assert.Error(t, noPost.Validate())
}

func TestDisplayLines(t *testing.T) {
	user := &User{ID: 1, Name: "Leanne Graham", Company: Company{Name: "Romaguera-Crona"}}
	assert.Equal(t, "Author: Leanne Graham with Romaguera-Crona", user.Byline())

	post := &Post{ID: 7}
	assert.Equal(t, "Post ID: 7", post.IDLine())

	comment := &Comment{Email: "Eliseo@gardner.biz"}
	assert.Equal(t, "From: Eliseo@gardner.biz", comment.From())
}

func TestRelationSetters(t *testing.T) {
	post := &Post{ID: 3}
	assert.Error(t, post.SetAuthor(nil))
	assert.NoError(t, post.SetAuthor(&User{ID: 2}))
	assert.Equal(t, 2, post.UserID)

	comment := &Comment{ID: 9}
	assert.Error(t, comment.SetPost(nil))
	assert.NoError(t, comment.SetPost(post))
	assert.Equal(t, 3, comment.PostID)
}
