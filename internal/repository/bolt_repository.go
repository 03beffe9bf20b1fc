package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eshika-chat/internal/domain"
	eshika_errors "eshika-chat/pkg/errors"

	bolt "go.etcd.io/bbolt"
)

var usersBucket = []byte("users")

// BoltRepository stores one JSON-encoded user per key in an embedded bbolt file.
type BoltRepository struct {
	db *bolt.DB
}

func NewBoltRepository(path string) (*BoltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, errCreate := tx.CreateBucketIfNotExists(usersBucket)
		return errCreate
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Get(ctx context.Context, email string) (domain.User, error) {
	key, err := userKey(email)
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	err = r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(usersBucket).Get([]byte(key))
		if raw == nil {
			return fmt.Errorf("user %s: %w", key, eshika_errors.ErrNotFound)
		}
		decoded, errDecode := decodeUser(raw)
		if errDecode != nil {
			return errDecode
		}
		u = decoded
		return nil
	})
	return u, err
}

func (r *BoltRepository) Upsert(ctx context.Context, u domain.User) error {
	key, err := userKey(u.Email)
	if err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Put([]byte(key), data)
	})
}

func (r *BoltRepository) DeleteChat(ctx context.Context, email, chatID string) error {
	return deleteChat(ctx, r, email, chatID)
}

func (r *BoltRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).ForEach(func(_, v []byte) error {
			u, errDecode := decodeUser(v)
			if errDecode != nil {
				return errDecode
			}
			users = append(users, u)
			return nil
		})
	})
	return users, err
}

func (r *BoltRepository) Ping(ctx context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(usersBucket) == nil {
			return fmt.Errorf("bucket %s missing", usersBucket)
		}
		return nil
	})
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}
