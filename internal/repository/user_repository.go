package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"eshika-chat/internal/domain"
	eshika_errors "eshika-chat/pkg/errors"
	"eshika-chat/pkg/logger"
)

// DocumentRepository keeps every user in memory and rewrites the whole
// document to its Blob on each mutation (write-through, last write wins).
type DocumentRepository struct {
	blob Blob
	log  *logger.Logger

	mu    sync.RWMutex
	users []domain.User
	index map[string]int
}

// NewDocumentRepository hydrates from blob. A missing or unparsable document
// yields an empty store; the parse failure is logged, not returned.
func NewDocumentRepository(ctx context.Context, blob Blob, l *logger.Logger) (*DocumentRepository, error) {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	r := &DocumentRepository{
		blob:  blob,
		log:   l,
		users: []domain.User{},
		index: make(map[string]int),
	}

	data, err := blob.Read(ctx)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("read user document: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		l.Errorf("user document is not valid JSON, starting empty: %s", err)
		return r, nil
	}
	for _, u := range users {
		key := domain.NormalizeEmail(u.Email)
		if key == "" {
			continue
		}
		if u.Chats == nil {
			u.Chats = []domain.Chat{}
		}
		if i, ok := r.index[key]; ok {
			r.users[i] = u
			continue
		}
		r.index[key] = len(r.users)
		r.users = append(r.users, u)
	}
	l.Infof("loaded %d users from document store", len(r.users))
	return r, nil
}

func (r *DocumentRepository) Get(ctx context.Context, email string) (domain.User, error) {
	key, err := userKey(email)
	if err != nil {
		return domain.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[key]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", key, eshika_errors.ErrNotFound)
	}
	return r.users[i].Clone(), nil
}

func (r *DocumentRepository) Upsert(ctx context.Context, u domain.User) error {
	key, err := userKey(u.Email)
	if err != nil {
		return err
	}
	if u.Chats == nil {
		u.Chats = []domain.Chat{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := u.Clone()
	if i, ok := r.index[key]; ok {
		r.users[i] = stored
	} else {
		r.index[key] = len(r.users)
		r.users = append(r.users, stored)
	}
	return r.flushLocked(ctx)
}

func (r *DocumentRepository) DeleteChat(ctx context.Context, email, chatID string) error {
	return deleteChat(ctx, r, email, chatID)
}

func (r *DocumentRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.blob.Ping(ctx)
}

func (r *DocumentRepository) Close() error {
	return nil
}

func (r *DocumentRepository) flushLocked(ctx context.Context) error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}
	if err := r.blob.Write(ctx, data); err != nil {
		r.log.Errorf("error saving user document: %s", err)
		return fmt.Errorf("write user document: %w", err)
	}
	return nil
}
