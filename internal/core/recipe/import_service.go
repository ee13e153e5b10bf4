package recipe

import (
	"context"
	"strings"

	aiservice "recipe-importer/internal/core/ai/service"
	"recipe-importer/internal/pkg/common"

	"go.uber.org/zap"
)

// AIService 匯入管線需要的補全服務能力
type AIService interface {
	ProcessPrompt(ctx context.Context, system, user string, temperature float64, maxTokens int) (*aiservice.Response, error)
	TranscribeImage(ctx context.Context, imageData, instruction string, maxTokens int) (*aiservice.Response, error)
}

// ImportService 食譜匯入服務
// 原始文字 → 提示詞 → 補全 → 驗證與修復 → 組裝
type ImportService struct {
	aiService AIService
}

// NewImportService 創建食譜匯入服務
func NewImportService(aiService AIService) *ImportService {
	return &ImportService{
		aiService: aiService,
	}
}

// ImportFromText 將原始文字匯入為結構化食譜
// 模型輸出一律經過驗證層的第二道修復，提示詞規則只是第一道防線
func (s *ImportService) ImportFromText(ctx context.Context, req ExtractionRequest) (*StructuredRecipe, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "匯入文字不可為空", 400, nil)
	}

	spec := BuildExtractionPrompt(req.Text, req.Kind)

	resp, err := s.aiService.ProcessPrompt(ctx, spec.System, spec.User, spec.Temperature, spec.MaxTokens)
	if err != nil {
		common.LogError("食譜抽取失敗",
			zap.Error(err),
			zap.String("source", req.Source),
		)
		return nil, err
	}

	common.LogDebug("AI 回應內容 (recipe/import)",
		zap.Int("ai_response_length", len(resp.Content)),
		zap.Bool("cache_hit", resp.CacheHit),
	)

	validated, err := ValidateResponse(resp.Content)
	if err != nil {
		common.LogError("食譜驗證失敗",
			zap.Error(err),
			zap.String("source", req.Source),
		)
		return nil, common.NewValidationError(err)
	}

	rec := Assemble(validated, Provenance{
		Kind:       req.Kind,
		Identifier: req.Source,
	})

	common.LogInfo("食譜匯入成功",
		zap.String("title", rec.Title),
		zap.String("source", rec.RecipeSource),
		zap.Int("ingredients", len(rec.Ingredients)),
		zap.Int("directions", len(rec.Directions)),
	)

	return rec, nil
}

// TranscribeImage 將圖片逐字轉錄為純文字，尚未結構化
// 結構化由呼叫端以 ImportFromText 接續
func (s *ImportService) TranscribeImage(ctx context.Context, imageData string) (string, error) {
	spec := BuildTranscriptionPrompt()

	resp, err := s.aiService.TranscribeImage(ctx, imageData, spec.User, spec.MaxTokens)
	if err != nil {
		common.LogError("圖片轉錄失敗", zap.Error(err))
		return "", err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", common.NewExtractionError("圖片轉錄結果為空", nil)
	}
	return text, nil
}

// ImportFromImage 先轉錄圖片再走文字匯入管線
func (s *ImportService) ImportFromImage(ctx context.Context, imageData, source string) (*StructuredRecipe, error) {
	text, err := s.TranscribeImage(ctx, imageData)
	if err != nil {
		return nil, err
	}

	return s.ImportFromText(ctx, ExtractionRequest{
		Text:   text,
		Kind:   SourceFile,
		Source: source,
	})
}
