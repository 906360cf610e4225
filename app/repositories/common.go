package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types. Ids are zero padded so that
	// prefix iteration returns records in id order.
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Sequence key for comments saved without an id
	CommentSeqKey = "seq:comment"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// Open opens the Badger database at path. An empty path opens an in-memory
// database.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

func userKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%08d", UserKeyPrefix, id))
}

func postKey(userID, id int) []byte {
	return []byte(fmt.Sprintf("%s%08d:%08d", PostKeyPrefix, userID, id))
}

func commentKey(postID, id int) []byte {
	return []byte(fmt.Sprintf("%s%08d:%08d", CommentKeyPrefix, postID, id))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	last, err := lastID(txn, seqKey)
	if err != nil {
		return 0, err
	}
	id := last + 1
	if err := setLastID(txn, seqKey, id); err != nil {
		return 0, err
	}
	return id, nil
}

// reserveID moves the sequence past an explicitly assigned ID so later
// sequence values never collide with it
func reserveID(txn *badger.Txn, seqKey string, id int) error {
	last, err := lastID(txn, seqKey)
	if err != nil {
		return err
	}
	if id <= last {
		return nil
	}
	return setLastID(txn, seqKey, id)
}

func lastID(txn *badger.Txn, seqKey string) (int, error) {
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
		return nil
	})
	return id, err
}

func setLastID(txn *badger.Txn, seqKey string, id int) error {
	return txn.Set([]byte(seqKey), []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)})
}

// scanPrefix unmarshals every value under prefix, in key order
func scanPrefix[T any](db *badger.DB, prefix []byte) ([]*T, error) {
	entities := []*T{}
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entity T
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &entity)
			})
			if err != nil {
				return err
			}
			entities = append(entities, &entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
