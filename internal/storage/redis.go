package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the ids of logged-out session tokens until they expire.
type RedisStorage struct {
	client *redis.Client
}

var (
	revokedPrefix = "revoked:"
)

func NewRedisStorage(ctx context.Context, addr, password string, db int, log *slog.Logger) (*RedisStorage, error) {
	rdb := NewRedisClient(addr, password, db)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Info("Connected to Redis successfully")

	return &RedisStorage{client: rdb}, nil
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *RedisStorage) Client() *redis.Client {
	return r.client
}

func (r *RedisStorage) RevokeToken(ctx context.Context, tokenId string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedPrefix+tokenId, 1, ttl).Err()
}

func (r *RedisStorage) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedPrefix+tokenId).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
