package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// fakeStore 記錄讀寫的快取替身
type fakeStore struct {
	values map[string]string
	gets   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (f *fakeStore) Get(ctx context.Context, prompt, imageData string) (string, error) {
	f.gets = append(f.gets, prompt)
	if v, ok := f.values[prompt+"|"+imageData]; ok {
		return v, nil
	}
	return "", common.ErrCacheDisabled
}

func (f *fakeStore) Set(ctx context.Context, prompt, imageData, value string) error {
	f.values[prompt+"|"+imageData] = value
	return nil
}

func (f *fakeStore) Close() error { return nil }

func serviceConfig() *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{
			APIKey:      "test-key",
			Model:       "openai/gpt-4o-mini",
			VisionModel: "openai/gpt-4o-mini",
			Timeout:     time.Second,
		},
	}
}

func TestProcessPromptCacheHit(t *testing.T) {
	store := newFakeStore()
	store.values[canonicalPrompt("sys\x00user prompt")+"|"] = "cached output"

	svc := NewService(serviceConfig(), store)
	resp, err := svc.ProcessPrompt(context.Background(), "sys", "user prompt", 0.1, 100)
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, "cached output", resp.Content)
}

func TestTranscribeImageCacheHit(t *testing.T) {
	store := newFakeStore()
	store.values[canonicalPrompt("transcribe this")+"|img-data"] = "transcribed text"

	svc := NewService(serviceConfig(), store)
	resp, err := svc.TranscribeImage(context.Background(), "img-data", "transcribe this", 100)
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, "transcribed text", resp.Content)
}

func TestCanonicalPrompt(t *testing.T) {
	assert.Equal(t, "a b c", canonicalPrompt("  a\n\n b\t c  "))
	assert.Equal(t, canonicalPrompt("same  prompt"), canonicalPrompt("same\nprompt"))
}
