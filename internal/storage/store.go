package storage

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Persisted keys.
const (
	KeyScanHistory = "scan_history"
	KeyAppSettings = "app_settings"
	// KeyLanguage is the legacy location of the UI language, superseded by app_settings.language.
	KeyLanguage = "language"
)

var defaultBucket = []byte("kv")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable key-value storage shared by history and settings.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// BoltStore implements KV on a single bbolt bucket.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

var _ KV = (*BoltStore)(nil)

// Open opens (creating when needed) the database file at path.
func Open(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage dir for %s", path)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %s", path)
	}
	s := &BoltStore{db: db, bucket: defaultBucket}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init storage bucket")
	}
	return s, nil
}

// Get returns a copy of the value stored under key.
func (s *BoltStore) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "read %s", key)
	}
	return out, nil
}

func (s *BoltStore) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
	return errors.Wrapf(err, "write %s", key)
}

func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	return errors.Wrapf(err, "delete %s", key)
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// GetJSON decodes the value under key into v.
func GetJSON(kv KV, key string, v interface{}) error {
	data, err := kv.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", key)
	}
	return nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(kv KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return kv.Put(key, data)
}

// Error reports a failed read or write of a persisted key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return "storage " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
