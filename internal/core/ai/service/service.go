package service

import (
	"context"
	"strings"
	"time"

	"recipe-importer/internal/core/ai/cache"
	"recipe-importer/internal/core/ai/openrouter"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// Response AI 回應結構
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務門面
// 在補全客戶端外包一層快取；每個請求都是獨立的無狀態工作單元，
// 這裡不保存任何跨請求的可變狀態（快取除外）
type Service struct {
	config     *config.Config
	client     *openrouter.Client
	cacheStore cache.Store
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheStore cache.Store) *Service {
	return &Service{
		config:     cfg,
		client:     openrouter.NewClient(cfg),
		cacheStore: cacheStore,
	}
}

// ProcessPrompt 發送文字補全請求
// 快取鍵使用正規化後的提示詞，同一份輸入不會觸發第二次補全呼叫
func (s *Service) ProcessPrompt(ctx context.Context, system, user string, temperature float64, maxTokens int) (*Response, error) {
	cacheKey := canonicalPrompt(system + "\x00" + user)

	if s.cacheStore != nil {
		if val, err := s.cacheStore.Get(ctx, cacheKey, ""); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	start := time.Now()
	content, err := s.client.Complete(ctx, &openrouter.ChatRequest{
		System:      system,
		User:        user,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	common.LogAICall(user, time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.Set(ctx, cacheKey, "", content)
	}

	return &Response{Content: content}, nil
}

// TranscribeImage 發送視覺轉錄請求
// instruction 為轉錄指令，imageData 為 data URL 或裸 base64
func (s *Service) TranscribeImage(ctx context.Context, imageData, instruction string, maxTokens int) (*Response, error) {
	cacheKey := canonicalPrompt(instruction)

	if s.cacheStore != nil {
		if val, err := s.cacheStore.Get(ctx, cacheKey, imageData); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	start := time.Now()
	content, err := s.client.Complete(ctx, &openrouter.ChatRequest{
		Model:     s.config.OpenRouter.VisionModel,
		User:      instruction,
		MaxTokens: maxTokens,
		ImageData: imageData,
	})
	common.LogAICall(instruction, time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.Set(ctx, cacheKey, imageData, content)
	}

	return &Response{Content: content}, nil
}

// Close 關閉底層客戶端
func (s *Service) Close() error {
	return s.client.Close()
}

// canonicalPrompt 統一 prompt 格式，去除多餘空白與換行，確保快取鍵一致
func canonicalPrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	return strings.Join(strings.Fields(prompt), " ")
}
