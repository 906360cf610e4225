package services

import (
	"context"
	"testing"

	"employeedir/app/models"
	"employeedir/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	users    []models.User
	posts    map[int][]models.Post
	comments map[int][]models.Comment
}

func (f *fakeSource) FetchUsers(ctx context.Context) []models.User {
	return f.users
}

func (f *fakeSource) FetchUserPosts(ctx context.Context, userID int) []models.Post {
	return f.posts[userID]
}

func (f *fakeSource) FetchPostComments(ctx context.Context, postID int) []models.Comment {
	return f.comments[postID]
}

func newTestService() *MirrorService {
	return NewMirrorService(mock.NewUserRepository(), mock.NewPostRepository(), mock.NewCommentRepository(), nil)
}

func TestSeed(t *testing.T) {
	src := &fakeSource{
		users: []models.User{
			{ID: 1, Name: "Leanne Graham", Company: models.Company{Name: "Romaguera-Crona"}},
			{ID: 2, Name: "Ervin Howell", Company: models.Company{Name: "Deckow-Crist"}},
			{ID: 0, Name: "x"},
		},
		posts: map[int][]models.Post{
			1: {{ID: 1, UserID: 1, Title: "sunt aut facere"}, {ID: 2, UserID: 1, Title: "qui est esse"}},
			2: {{ID: 11, UserID: 2, Title: "et ea vero"}},
		},
		comments: map[int][]models.Comment{
			1: {{ID: 1, PostID: 1, Name: "id labore ex", Email: "Eliseo@gardner.biz"}},
			2: {{ID: 6, PostID: 2, Name: "et fugit", Email: "not-an-email"}},
		},
	}

	service := newTestService()
	stats, err := service.Seed(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Users: 2, Posts: 3, Comments: 1}, stats)

	posts, err := service.ListPosts(1)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	comments, err := service.ListComments(1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	comments, err = service.ListComments(2)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestSeedWithoutUsers(t *testing.T) {
	service := newTestService()
	_, err := service.Seed(context.Background(), &fakeSource{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSeedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{users: []models.User{{ID: 1, Name: "Leanne Graham", Company: models.Company{Name: "Romaguera-Crona"}}}}
	stats, err := newTestService().Seed(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Users)
}

func TestSaveValidation(t *testing.T) {
	service := newTestService()

	assert.Error(t, service.SaveUser(&models.User{ID: 1}))
	assert.Error(t, service.SavePost(&models.Post{ID: 1}))
	assert.Error(t, service.SaveComment(&models.Comment{PostID: 1}))

	require.NoError(t, service.SaveUser(&models.User{ID: 1, Name: "Leanne Graham", Company: models.Company{Name: "Romaguera-Crona"}}))
	user, err := service.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", user.Name)
}
