package repositories

import (
	"employeedir/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Save creates or replaces a user
func (r *BadgerUserRepository) Save(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users ordered by ID
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	return scanPrefix[models.User](r.db, []byte(UserKeyPrefix))
}
