package cache

import (
	"context"
	"fmt"

	"recipe-importer/internal/infrastructure/config"
)

// Store 抽取結果快取介面
// 以提示詞（加上可選的圖片數據）為鍵，值為模型的原始文字輸出
type Store interface {
	Get(ctx context.Context, prompt, imageData string) (string, error)
	Set(ctx context.Context, prompt, imageData, value string) error
	Close() error
}

// NewStore 依設定建立快取後端；快取停用時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg)
	case "memory":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
