package bolt

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names, one per entity type.
const (
	BucketChallenges  = "challenges"
	BucketProgress    = "daily_progress"
	BucketReflections = "video_reflections"
	BucketSettings    = "user_settings"
	BucketProfile     = "user_profile"
)

// ErrKeyNotFound is returned by Get when the key has no value. Repositories
// translate it into the matching domain error.
var ErrKeyNotFound = errors.New("bolt: key not found")

var allBuckets = []string{
	BucketChallenges,
	BucketProgress,
	BucketReflections,
	BucketSettings,
	BucketProfile,
}

// Store wraps BoltDB as the application's local object store. Values are
// JSON-encoded; composite keys give per-challenge prefix scans.
type Store struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures all entity buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Put JSON-encodes value under key.
func (s *Store) Put(bucket, key string, value interface{}) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), payload)
	})
}

// Get decodes the value stored under key into out.
func (s *Store) Get(bucket, key string, out interface{}) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucket)).Get([]byte(key))
		if raw == nil {
			return ErrKeyNotFound
		}
		return json.Unmarshal(raw, out)
	})
}

// Scan invokes fn for every value whose key starts with prefix, in key order.
// An empty prefix walks the whole bucket.
func (s *Store) Scan(bucket, prefix string, fn func(key string, raw []byte) error) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucket)).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			if err := fn(string(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a single key. Deleting a missing key is not an error.
func (s *Store) Delete(bucket, key string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(key))
	})
}

// DeletePrefix removes every key starting with prefix in one transaction.
func (s *Store) DeletePrefix(bucket, prefix string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucket)).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops and recreates a bucket.
func (s *Store) Clear(bucket string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucket))
		return err
	})
}

// Count returns the number of keys in a bucket.
func (s *Store) Count(bucket string) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucket)).Stats().KeyN
		return nil
	})
	return count, err
}

// Ping verifies the database still accepts read transactions.
func (s *Store) Ping() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bolt.Tx) error { return nil })
}

// Stats exposes Bolt statistics for the health endpoint.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
