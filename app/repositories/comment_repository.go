package repositories

import (
	"fmt"

	"employeedir/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Save creates or replaces a comment. A comment without an ID is given the
// next value of the comment sequence; an explicit ID advances the sequence.
func (r *BadgerCommentRepository) Save(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if comment.ID == 0 {
			id, err := getNextID(txn, CommentSeqKey)
			if err != nil {
				return err
			}
			comment.ID = id
		} else if err := reserveID(txn, CommentSeqKey, comment.ID); err != nil {
			return err
		}

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Save comment with post ID in key for efficient listing
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	prefix := []byte(fmt.Sprintf("%s%08d:", CommentKeyPrefix, postID))
	return scanPrefix[models.Comment](r.db, prefix)
}
