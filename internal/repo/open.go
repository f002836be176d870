package repo

import (
	"TokenGate/internal/config"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open выбирает бэкенд по конфигу. Возвращаемую функцию нужно вызвать при остановке сервера.
func Open(ctx context.Context, cfg *config.Config) (TokenRepository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreSQL:
		db, err := InitDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql.DB: %w", err)
		}
		return NewTokenRepository(db), sqlDB.Close, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisTokenRepository(client, cfg.RedisPrefix), client.Close, nil

	default:
		return NewMemoryTokenRepository(), func() error { return nil }, nil
	}
}
