package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketKeepNotes = []byte("keepnotes")

type bboltRepository struct {
	db *bolt.DB
}

func NewBboltRepository(path string) (KV, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{db: db}, nil
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKeepNotes)
		return err
	})
}

func (r *bboltRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKeepNotes)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		// bbolt memory is only valid inside the transaction.
		out = append([]byte{}, raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bboltRepository) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is required")
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKeepNotes)
		if b == nil {
			return errors.New("keepnotes bucket missing")
		}
		return b.Put([]byte(key), value)
	})
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
