package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eshika-chat/internal/domain"
	eshika_errors "eshika-chat/pkg/errors"
)

// ErrBlobNotFound is returned by Blob.Read when the document does not exist yet.
var ErrBlobNotFound = errors.New("blob not found")

// deleteChat is the shared DeleteChat for backends without a native
// partial update: load, drop, write back.
func deleteChat(ctx context.Context, repo UserRepository, email, chatID string) error {
	u, err := repo.Get(ctx, email)
	if err != nil {
		return err
	}
	if !u.RemoveChat(chatID) {
		return fmt.Errorf("chat %s: %w", chatID, eshika_errors.ErrNotFound)
	}
	return repo.Upsert(ctx, u)
}

func encodeUser(u domain.User) ([]byte, error) {
	if u.Chats == nil {
		u.Chats = []domain.Chat{}
	}
	return json.Marshal(u)
}

func decodeUser(data []byte) (domain.User, error) {
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	if u.Chats == nil {
		u.Chats = []domain.Chat{}
	}
	return u, nil
}

func userKey(email string) (string, error) {
	key := domain.NormalizeEmail(email)
	if key == "" {
		return "", fmt.Errorf("empty email: %w", eshika_errors.ErrInvalidInput)
	}
	return key, nil
}

// CopyUsers writes every user from src into dst and returns how many were copied.
func CopyUsers(ctx context.Context, src, dst UserRepository) (int, error) {
	users, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list source users: %w", err)
	}
	for i, u := range users {
		if err := dst.Upsert(ctx, u); err != nil {
			return i, fmt.Errorf("copy user %s: %w", u.Email, err)
		}
	}
	return len(users), nil
}
