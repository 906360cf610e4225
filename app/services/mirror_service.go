package services

import (
	"context"
	"errors"
	"fmt"

	"employeedir/app/models"
	"employeedir/app/repositories"

	"go.uber.org/zap"
)

// Source is the upstream the mirror copies from.
type Source interface {
	FetchUsers(ctx context.Context) []models.User
	FetchUserPosts(ctx context.Context, userID int) []models.Post
	FetchPostComments(ctx context.Context, postID int) []models.Comment
}

// SeedStats counts the records copied by Seed
type SeedStats struct {
	Users    int
	Posts    int
	Comments int
}

// ErrSourceUnavailable is returned by Seed when the upstream user list
// cannot be fetched.
var ErrSourceUnavailable = errors.New("source returned no users")

// MirrorService serves a local copy of the directory API
type MirrorService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	log         *zap.Logger
}

// NewMirrorService creates a new MirrorService
func NewMirrorService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, log *zap.Logger) *MirrorService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MirrorService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		log:         log,
	}
}

// ListUsers returns every user ordered by ID
func (s *MirrorService) ListUsers() ([]*models.User, error) {
	return s.userRepo.List()
}

// GetUser returns one user
func (s *MirrorService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListPosts returns the posts of one user
func (s *MirrorService) ListPosts(userID int) ([]*models.Post, error) {
	return s.postRepo.ListByUser(userID)
}

// ListComments returns the comments of one post
func (s *MirrorService) ListComments(postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(postID)
}

// SaveUser validates and stores a user
func (s *MirrorService) SaveUser(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return s.userRepo.Save(user)
}

// SavePost validates and stores a post
func (s *MirrorService) SavePost(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Save(post)
}

// SaveComment validates and stores a comment
func (s *MirrorService) SaveComment(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	return s.commentRepo.Save(comment)
}

// Seed copies every user, their posts and the posts' comments from src.
// Records that fail validation are logged and skipped.
func (s *MirrorService) Seed(ctx context.Context, src Source) (SeedStats, error) {
	var stats SeedStats

	users := src.FetchUsers(ctx)
	if users == nil {
		return stats, ErrSourceUnavailable
	}

	for i := range users {
		user := users[i]
		if err := s.SaveUser(&user); err != nil {
			s.log.Warn("skipping user", zap.Int("user_id", user.ID), zap.Error(err))
			continue
		}
		stats.Users++

		for _, post := range src.FetchUserPosts(ctx, user.ID) {
			post := post
			if err := s.SavePost(&post); err != nil {
				s.log.Warn("skipping post", zap.Int("post_id", post.ID), zap.Error(err))
				continue
			}
			stats.Posts++

			for _, comment := range src.FetchPostComments(ctx, post.ID) {
				comment := comment
				if err := s.SaveComment(&comment); err != nil {
					s.log.Warn("skipping comment", zap.Int("comment_id", comment.ID), zap.Error(err))
					continue
				}
				stats.Comments++
			}
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}

	s.log.Info("mirror seeded",
		zap.Int("users", stats.Users),
		zap.Int("posts", stats.Posts),
		zap.Int("comments", stats.Comments))
	return stats, nil
}
