package repository

import (
	"context"

	"eshika-chat/internal/domain"
)

// UserRepository is the single-writer key-value view of the user store,
// keyed by case-folded email. Returned users are copies; mutate then Upsert.
//
// There is no cross-call locking: two concurrent read-modify-write cycles on
// the same user may lose one update.
type UserRepository interface {
	Get(ctx context.Context, email string) (domain.User, error)
	Upsert(ctx context.Context, u domain.User) error
	DeleteChat(ctx context.Context, email, chatID string) error
	List(ctx context.Context) ([]domain.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// Blob is a whole-document backing store for DocumentRepository.
type Blob interface {
	// Read returns ErrBlobNotFound when nothing has been written yet.
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
}
