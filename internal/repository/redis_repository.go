package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eshika-chat/internal/domain"
	eshika_redis "eshika-chat/internal/redis"
	eshika_errors "eshika-chat/pkg/errors"

	goredis "github.com/redis/go-redis/v9"
)

// Key patterns:
// - {prefix}:user:{email} - JSON user record, no TTL
// - {prefix}:users - sorted set of emails scored by first insert time
type RedisRepository struct {
	client *goredis.Client
	prefix string
}

func NewRedisRepository(client *goredis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "eshika"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) userKey(email string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, email)
}

func (r *RedisRepository) indexKey() string {
	return fmt.Sprintf("%s:users", r.prefix)
}

func (r *RedisRepository) Get(ctx context.Context, email string) (domain.User, error) {
	key, err := userKey(email)
	if err != nil {
		return domain.User{}, err
	}
	data, err := r.client.Get(ctx, r.userKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.User{}, fmt.Errorf("user %s: %w", key, eshika_errors.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, err
	}
	return decodeUser(data)
}

func (r *RedisRepository) Upsert(ctx context.Context, u domain.User) error {
	key, err := userKey(u.Email)
	if err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, r.userKey(key), data, 0)
		pipe.ZAddNX(ctx, r.indexKey(), goredis.Z{
			Score:  float64(time.Now().UnixNano()),
			Member: key,
		})
		return nil
	})
	return err
}

func (r *RedisRepository) DeleteChat(ctx context.Context, email, chatID string) error {
	return deleteChat(ctx, r, email, chatID)
}

func (r *RedisRepository) List(ctx context.Context) ([]domain.User, error) {
	emails, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(emails))
	for _, email := range emails {
		u, err := r.Get(ctx, email)
		if errors.Is(err, eshika_errors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return eshika_redis.Ping(ctx, r.client)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
