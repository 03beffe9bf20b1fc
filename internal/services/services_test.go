package services

import (
	"context"
	"path/filepath"
	"testing"

	"eshika-chat/internal/domain"
	"eshika-chat/internal/repository"
	"eshika-chat/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	repo, err := repository.NewDocumentRepository(context.Background(), repository.NewFileBlob(path), logger.NewNop())
	require.NoError(t, err)
	return repo
}

func seedUser(t *testing.T, repo repository.UserRepository, email string, chats ...domain.Chat) {
	t.Helper()
	if chats == nil {
		chats = []domain.Chat{}
	}
	require.NoError(t, repo.Upsert(context.Background(), domain.User{
		ID:       "id-" + email,
		Username: "user",
		Email:    email,
		Password: "secret",
		Chats:    chats,
	}))
}
