package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 匯入管線錯誤
	// 結構性失敗會中止管線；內容品質問題一律在驗證層修復，不會出現在這裡
	ErrCodeFetchFailed          = "FETCH_FAILED"           // 網頁抓取失敗（非 200、逾時、無法連線）
	ErrCodeExtractionFailed     = "EXTRACTION_FAILED"      // 上游補全／視覺服務呼叫失敗
	ErrCodeMalformedOutput      = "MALFORMED_OUTPUT"       // 模型輸出去除圍欄後仍無法解析
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD" // 缺少 title
	ErrCodeValidationFailed     = "VALIDATION_FAILED"      // 驗證失敗的聚合包裝
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrCacheFull      = NewError("CACHE_FULL", "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled  = NewError("CACHE_DISABLED", "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrAIServiceError = NewError("AI_SERVICE_ERROR", "AI 服務錯誤", http.StatusServiceUnavailable, nil)
)

// NewFetchError 創建網頁抓取失敗錯誤，保留上游診斷訊息
func NewFetchError(message string, err error) *CustomError {
	return NewError(ErrCodeFetchFailed, message, http.StatusBadGateway, err)
}

// NewExtractionError 創建上游 AI 呼叫失敗錯誤
func NewExtractionError(message string, err error) *CustomError {
	return NewError(ErrCodeExtractionFailed, message, http.StatusServiceUnavailable, err)
}

// NewMalformedOutputError 創建模型輸出無法解析錯誤
// raw 為去除圍欄後的原始輸出，附帶於錯誤中供診斷使用
func NewMalformedOutputError(raw string, err error) *CustomError {
	return NewError(ErrCodeMalformedOutput,
		fmt.Sprintf("模型輸出無法解析為 JSON（原始輸出：%s）", raw),
		http.StatusUnprocessableEntity, err)
}

// NewMissingFieldError 創建必填欄位缺失錯誤
func NewMissingFieldError(field string) *CustomError {
	return NewError(ErrCodeMissingRequiredField,
		fmt.Sprintf("缺少必填欄位：%s", field),
		http.StatusUnprocessableEntity, nil)
}

// NewValidationError 將驗證階段的錯誤包裝為聚合錯誤
func NewValidationError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		// 已是結構性錯誤時保留原始代碼
		return ce
	}
	return NewError(ErrCodeValidationFailed, "食譜驗證失敗", http.StatusUnprocessableEntity, err)
}

// ErrorCode 取出錯誤代碼，非自定義錯誤回傳 INTERNAL_ERROR
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternalError
}

// ErrorStatus 取出 HTTP 狀態碼，非自定義錯誤回傳 500
func ErrorStatus(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}
