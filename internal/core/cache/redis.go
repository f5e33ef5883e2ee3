package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 版回應快取
// 與記憶體版共用同一介面；命中統計在本地行程內累計
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig
	hits   int64
	misses int64
}

// NewRedisStore 創建 Redis 快取
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已初始化",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("預設存活時間", cfg.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 讀取快取值；Redis 以 TTL 自行處理過期
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("Redis 讀取失敗", zap.Error(err), zap.String("鍵", key))
		}
		atomic.AddInt64(&s.misses, 1)
		return "", false
	}

	atomic.AddInt64(&s.hits, 1)
	return val, true
}

// Set 寫入快取值
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.config.TTL
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete 刪除快取值
func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		common.LogWarn("Redis 刪除失敗", zap.Error(err), zap.String("鍵", key))
	}
}

// GetStats 獲取統計信息
func (s *RedisStore) GetStats(ctx context.Context) Stats {
	hits := atomic.LoadInt64(&s.hits)
	misses := atomic.LoadInt64(&s.misses)

	keys := 0
	if size, err := s.client.DBSize(ctx).Result(); err == nil {
		keys = int(size)
	}

	return Stats{
		Hits:    hits,
		Misses:  misses,
		Keys:    keys,
		HitRate: hitRate(hits, misses),
	}
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
