package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"eshika-chat/internal/domain"
	eshika_errors "eshika-chat/pkg/errors"
	"eshika-chat/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) UserRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	repo, err := NewDocumentRepository(context.Background(), NewFileBlob(path), logger.NewNop())
	require.NoError(t, err)
	return repo
}

func newBoltRepo(t *testing.T) UserRepository {
	t.Helper()
	repo, err := NewBoltRepository(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newRedisRepo(t *testing.T) UserRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client, "test")
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

var backends = map[string]func(t *testing.T) UserRepository{
	"json":  newFileRepo,
	"bolt":  newBoltRepo,
	"redis": newRedisRepo,
}

func sampleUser(email string) domain.User {
	return domain.User{
		ID:       "u-1",
		Username: "alice",
		Email:    email,
		Password: "pw",
		Chats: []domain.Chat{{
			ID:        "1700000000000123",
			Title:     "first",
			Messages:  []domain.Message{{Role: domain.RoleUser, Content: "hi"}, {Role: domain.RoleBot, Content: "hello"}},
			Timestamp: 1700000000000,
		}},
	}
}

func TestUserRepositoryBackends(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			_, err := repo.Get(ctx, "alice@example.com")
			assert.ErrorIs(t, err, eshika_errors.ErrNotFound)

			require.NoError(t, repo.Upsert(ctx, sampleUser("alice@example.com")))

			got, err := repo.Get(ctx, "  ALICE@example.com")
			require.NoError(t, err)
			assert.Equal(t, "alice", got.Username)
			require.Len(t, got.Chats, 1)
			assert.Len(t, got.Chats[0].Messages, 2)

			got.Username = "alice2"
			require.NoError(t, repo.Upsert(ctx, got))

			users, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, users, 1, "upsert must not duplicate the record")
			assert.Equal(t, "alice2", users[0].Username)

			require.NoError(t, repo.DeleteChat(ctx, "alice@example.com", "1700000000000123"))
			got, err = repo.Get(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.Empty(t, got.Chats)
			assert.NotNil(t, got.Chats)

			err = repo.DeleteChat(ctx, "alice@example.com", "missing")
			assert.ErrorIs(t, err, eshika_errors.ErrNotFound)

			_, err = repo.Get(ctx, "  ")
			assert.ErrorIs(t, err, eshika_errors.ErrInvalidInput)

			assert.NoError(t, repo.Ping(ctx))
		})
	}
}

func TestDocumentRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t)
	require.NoError(t, repo.Upsert(ctx, sampleUser("a@x.com")))

	u, err := repo.Get(ctx, "a@x.com")
	require.NoError(t, err)
	u.Chats[0].Messages[0].Content = "mutated"

	again, err := repo.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Chats[0].Messages[0].Content)
}

func TestDocumentRepositoryPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "users.json")

	repo, err := NewDocumentRepository(ctx, NewFileBlob(path), logger.NewNop())
	require.NoError(t, err)

	u := domain.User{ID: "1", Username: "bob", Email: "bob@x.com", Password: "pw", Chats: []domain.Chat{{ID: "c1", Title: "t"}}}
	for i := 0; i < 5; i++ {
		u.Chats[0].Messages = append(u.Chats[0].Messages, domain.Message{Role: domain.RoleUser, Content: string(rune('a' + i))})
		require.NoError(t, repo.Upsert(ctx, u))
	}

	reopened, err := NewDocumentRepository(ctx, NewFileBlob(path), logger.NewNop())
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Len(t, got.Chats[0].Messages, 5)
	for i, m := range got.Chats[0].Messages {
		assert.Equal(t, string(rune('a'+i)), m.Content)
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {", "document is pretty-printed with two-space indent")
}

func TestDocumentRepositoryCorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo, err := NewDocumentRepository(ctx, NewFileBlob(path), logger.NewNop())
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Upsert(ctx, sampleUser("a@x.com")))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "a@x.com")
}

func TestDocumentRepositoryEmptyListMarshalsAsArray(t *testing.T) {
	ctx := context.Background()
	blob := &memBlob{}
	repo, err := NewDocumentRepository(ctx, blob, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, domain.User{Email: "a@x.com"}))
	assert.Contains(t, string(blob.data), `"chats": []`)
}

func TestCopyUsers(t *testing.T) {
	ctx := context.Background()
	src := newFileRepo(t)
	dst := newBoltRepo(t)

	require.NoError(t, src.Upsert(ctx, sampleUser("a@x.com")))
	require.NoError(t, src.Upsert(ctx, sampleUser("b@x.com")))

	n, err := CopyUsers(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := dst.Get(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Len(t, got.Chats, 1)
}

type memBlob struct {
	data []byte
}

func (b *memBlob) Read(ctx context.Context) ([]byte, error) {
	if b.data == nil {
		return nil, ErrBlobNotFound
	}
	return b.data, nil
}

func (b *memBlob) Write(ctx context.Context, data []byte) error {
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *memBlob) Ping(ctx context.Context) error { return nil }
