package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eshika-chat/config"
	eshika_redis "eshika-chat/internal/redis"
	"eshika-chat/internal/storage"
	"eshika-chat/pkg/logger"
)

const (
	DriverJSON  = "json"
	DriverS3    = "s3"
	DriverBolt  = "bolt"
	DriverRedis = "redis"
)

// New opens the user store selected by cfg.StoreDriver. An empty driver means json.
func New(ctx context.Context, cfg *config.Config, l *logger.Logger) (UserRepository, error) {
	return NewWithDriver(ctx, cfg.StoreDriver, cfg, l)
}

func NewWithDriver(ctx context.Context, driver string, cfg *config.Config, l *logger.Logger) (UserRepository, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverJSON:
		if err := os.MkdirAll(filepath.Dir(cfg.UsersFile), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return NewDocumentRepository(ctx, NewFileBlob(cfg.UsersFile), l)
	case DriverS3:
		client, err := storage.NewClient(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return NewDocumentRepository(ctx, objectBlob{storage.NewObjectBlob(client, cfg.S3Key)}, l)
	case DriverBolt:
		return NewBoltRepository(cfg.BoltPath)
	case DriverRedis:
		client := eshika_redis.NewClient(eshika_redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := eshika_redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewRedisRepository(client, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", driver)
	}
}

// objectBlob maps the storage package's missing-object error onto ErrBlobNotFound.
type objectBlob struct {
	*storage.ObjectBlob
}

func (b objectBlob) Read(ctx context.Context) ([]byte, error) {
	data, err := b.ObjectBlob.Read(ctx)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrBlobNotFound
	}
	return data, err
}
