package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recipe-importer/internal/pkg/common"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// 允許上傳的副檔名
var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsAllowedFile 回報檔名是否為支援的上傳類型
func IsAllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsImageFile 回報檔名是否為圖片（需走視覺轉錄）
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// AllowedExtensions 回傳支援的副檔名清單，供錯誤訊息使用
func AllowedExtensions() []string {
	return []string{".txt", ".pdf", ".jpg", ".jpeg", ".png"}
}

// TextFromFile 從文字或 PDF 檔案取出純文字
// 圖片不在此處理，由呼叫端交給視覺轉錄
func TextFromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	case ".pdf":
		return textFromPDF(path)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// textFromPDF 讀取 PDF 的內嵌文字層
// 掃描型 PDF 沒有文字層，這裡不做 OCR，直接回報錯誤
func textFromPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			common.LogWarn("PDF 頁面文字抽取失敗",
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("PDF has no embedded text layer (scanned PDFs are not supported)")
	}

	common.LogInfo("PDF 文字抽取完成",
		zap.Int("pages", totalPages),
		zap.Int("text_length", len(result)),
	)

	return result, nil
}
