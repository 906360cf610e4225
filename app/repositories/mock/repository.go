package mock

import (
	"sort"
	"sync"

	"employeedir/app/models"
	"employeedir/app/repositories"
)

type UserRepository struct {
	users map[int]*models.User
	mutex sync.RWMutex
}

type PostRepository struct {
	posts map[int]*models.Post
	mutex sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int]*models.User)}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int]*models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// UserRepository implementation
func (m *UserRepository) Save(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) List() ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := []*models.User{}
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// PostRepository implementation
func (m *PostRepository) Save(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) ListByUser(userID int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

// CommentRepository implementation
func (m *CommentRepository) Save(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if comment.ID == 0 {
		comment.ID = m.nextID
	}
	if comment.ID >= m.nextID {
		m.nextID = comment.ID + 1
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}
