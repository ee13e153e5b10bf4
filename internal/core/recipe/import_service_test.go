package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiservice "recipe-importer/internal/core/ai/service"
	"recipe-importer/internal/pkg/common"
)

// fakeAIService 以固定回應代替補全服務
type fakeAIService struct {
	completion       string
	completionErr    error
	transcription    string
	transcriptionErr error

	lastSystem string
	lastUser   string
}

func (f *fakeAIService) ProcessPrompt(ctx context.Context, system, user string, temperature float64, maxTokens int) (*aiservice.Response, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.completionErr != nil {
		return nil, f.completionErr
	}
	return &aiservice.Response{Content: f.completion}, nil
}

func (f *fakeAIService) TranscribeImage(ctx context.Context, imageData, instruction string, maxTokens int) (*aiservice.Response, error) {
	if f.transcriptionErr != nil {
		return nil, f.transcriptionErr
	}
	return &aiservice.Response{Content: f.transcription}, nil
}

func TestImportFromTextSuccess(t *testing.T) {
	fake := &fakeAIService{completion: validOutput}
	svc := NewImportService(fake)

	rec, err := svc.ImportFromText(context.Background(), ExtractionRequest{
		Text:   "some recipe text",
		Kind:   SourceURL,
		Source: "https://example.com/chili",
	})
	require.NoError(t, err)
	assert.Equal(t, "Venison Chili", rec.Title)
	assert.Equal(t, "https://example.com/chili", rec.RecipeSource)
	assert.Equal(t, SourceURL, rec.SourceKind)

	// 原始文字必須逐字進入提示詞
	assert.Contains(t, fake.lastUser, "some recipe text")
	assert.Contains(t, fake.lastSystem, "precise recipe parser")
}

func TestImportFromTextEmptyInput(t *testing.T) {
	svc := NewImportService(&fakeAIService{})
	_, err := svc.ImportFromText(context.Background(), ExtractionRequest{Text: "   "})
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeInvalidRequest, common.ErrorCode(err))
}

func TestImportFromTextUpstreamFailure(t *testing.T) {
	fake := &fakeAIService{completionErr: common.NewExtractionError("service unavailable", nil)}
	svc := NewImportService(fake)

	_, err := svc.ImportFromText(context.Background(), ExtractionRequest{Text: "text", Kind: SourceURL})
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeExtractionFailed, common.ErrorCode(err))
}

func TestImportFromTextMalformedOutput(t *testing.T) {
	fake := &fakeAIService{completion: "sorry, I could not find a recipe"}
	svc := NewImportService(fake)

	_, err := svc.ImportFromText(context.Background(), ExtractionRequest{Text: "text", Kind: SourceURL})
	require.Error(t, err)
	// 結構性錯誤保留原始代碼，不被聚合碼掩蓋
	assert.Equal(t, common.ErrCodeMalformedOutput, common.ErrorCode(err))
}

func TestTranscribeImageEmptyResult(t *testing.T) {
	fake := &fakeAIService{transcription: "   "}
	svc := NewImportService(fake)

	_, err := svc.TranscribeImage(context.Background(), "data:image/jpeg;base64,xxxx")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeExtractionFailed, common.ErrorCode(err))
}

func TestImportFromImageChainsTranscription(t *testing.T) {
	fake := &fakeAIService{
		transcription: "Venison Chili\n2 lb ground venison",
		completion:    validOutput,
	}
	svc := NewImportService(fake)

	rec, err := svc.ImportFromImage(context.Background(), "data:image/jpeg;base64,xxxx", "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", rec.RecipeSource)
	assert.Equal(t, SourceFile, rec.SourceKind)
	assert.True(t, rec.IsFromFile())

	// 轉錄文字成為第二階段的輸入
	assert.Contains(t, fake.lastUser, "2 lb ground venison")
}
