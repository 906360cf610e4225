package repositories

import (
	"fmt"

	"employeedir/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Save creates or replaces a post. The owning user id is part of the key.
func (r *BadgerPostRepository) Save(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.UserID, post.ID), data)
	})
}

// ListByUser retrieves all posts for a user ordered by ID
func (r *BadgerPostRepository) ListByUser(userID int) ([]*models.Post, error) {
	prefix := []byte(fmt.Sprintf("%s%08d:", PostKeyPrefix, userID))
	return scanPrefix[models.Post](r.db, prefix)
}
