package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG
)

// ImageService 圖片前處理服務
// 將上傳的圖片統一轉為 JPEG data URL，再交給視覺轉錄
type ImageService struct {
	maxSizeBytes int64
}

// NewImageService 創建圖片前處理服務
func NewImageService(maxSizeBytes int64) *ImageService {
	return &ImageService{
		maxSizeBytes: maxSizeBytes,
	}
}

// EncodeImage 驗證並重新編碼圖片為 JPEG data URL
func (s *ImageService) EncodeImage(data []byte) (string, error) {
	// 檢查文件大小
	if int64(len(data)) > s.maxSizeBytes {
		return "", fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	// 解碼圖片
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	// 將圖片轉換為 JPEG 格式
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	// 重新編碼為 base64
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encoded), nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
	}
	return supportedFormats[format]
}
