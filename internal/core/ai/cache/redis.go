package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 後端的抽取結果快取
// 多個行程共用同一份快取時使用
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 快取
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已初始化",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, prompt, imageData string) (string, error) {
	value, err := s.client.Get(ctx, s.generateKey(prompt, imageData)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("cache miss")
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, prompt, imageData, value string) error {
	if err := s.client.Set(ctx, s.generateKey(prompt, imageData), value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// generateKey 生成緩存鍵
func (s *RedisStore) generateKey(prompt, imageData string) string {
	hash := sha256.Sum256([]byte(prompt + "\x00" + imageData))
	return fmt.Sprintf("extraction:%s", hex.EncodeToString(hash[:]))
}
