package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
// 唯一會發出網路請求的元件；不做內部重試，重試策略由呼叫端決定
type Client struct {
	config *config.Config
	client *resty.Client
}

// ChatRequest 單次補全請求的參數
// ImageData 為 data URL 形式的圖片，留空表示純文字請求
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	ImageData   string
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-importer.com").
		SetHeader("X-Title", "Recipe Importer")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 發送補全請求並回傳模型的原始文字輸出
// 任何傳輸、認證或配額錯誤都以 EXTRACTION_FAILED 形式回傳，附帶上游訊息
func (c *Client) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.config.OpenRouter.Model
	}

	var messages []map[string]interface{}
	if req.System != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": req.System,
		})
	}

	msgContent := []map[string]interface{}{
		{
			"type": "text",
			"text": req.User,
		},
	}
	if req.ImageData != "" {
		url := req.ImageData
		if !strings.HasPrefix(url, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", url)
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
	}
	messages = append(messages, map[string]interface{}{
		"role":    "user",
		"content": msgContent,
	})

	// 構建請求
	body := map[string]interface{}{
		"model":       model,
		"messages":    messages,
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Float64("temperature", req.Temperature),
		zap.Bool("has_image", req.ImageData != ""),
	)

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")

	if err != nil {
		common.LogError("Failed to send request to AI service",
			zap.Error(err),
			zap.String("model", model),
		)
		return "", common.NewExtractionError("failed to send request to OpenRouter", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("AI service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", model),
		)
		return "", common.NewExtractionError(
			fmt.Sprintf("OpenRouter API returned status %d: %s", resp.StatusCode(), resp.String()), nil)
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", common.NewExtractionError("failed to parse OpenRouter response", err)
	}

	if len(result.Choices) == 0 {
		return "", common.NewExtractionError("no choices in OpenRouter response", nil)
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", common.NewExtractionError("empty content in OpenRouter response", nil)
	}

	common.LogInfo("Successfully generated response from AI service",
		zap.String("model", model),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
