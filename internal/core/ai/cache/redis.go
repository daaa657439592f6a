package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以 Redis 保存生成結果，適合多實例部署
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	hits   int64
	misses int64
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		atomic.AddInt64(&s.misses, 1)
		if err == redis.Nil {
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	atomic.AddInt64(&s.hits, 1)
	return val, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 獲取統計
func (s *RedisStore) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "redis",
		"hits":    atomic.LoadInt64(&s.hits),
		"misses":  atomic.LoadInt64(&s.misses),
	}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
