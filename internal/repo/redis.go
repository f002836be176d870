package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepository хранит по ключу на токен: <prefix>:<token> = "1", без TTL.
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisTokenRepository создаёт репозиторий поверх готового клиента.
func NewRedisTokenRepository(client *redis.Client, prefix string) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: prefix}
}

func (r *RedisTokenRepository) key(token string) string {
	return r.prefix + ":" + token
}

func (r *RedisTokenRepository) MarkValidated(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key(token), "1", 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisTokenRepository) IsValidated(ctx context.Context, token string) (bool, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	return val == "1", nil
}
