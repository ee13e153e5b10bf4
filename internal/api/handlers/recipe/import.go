package recipe

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-importer/internal/core/extract"
	recipeCore "recipe-importer/internal/core/recipe"
	"recipe-importer/internal/core/scraper"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/infrastructure/storage"
	"recipe-importer/internal/pkg/common"
)

// Handler 食譜匯入與管理處理程序
type Handler struct {
	config        *config.Config
	importService *recipeCore.ImportService
	scraper       *scraper.Scraper
	imageService  *extract.ImageService
	store         *storage.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(cfg *config.Config, importService *recipeCore.ImportService, sc *scraper.Scraper, store *storage.Store) *Handler {
	return &Handler{
		config:        cfg,
		importService: importService,
		scraper:       sc,
		imageService:  extract.NewImageService(cfg.Upload.MaxSizeBytes),
		store:         store,
	}
}

// FromURLRequest 由網址匯入食譜
type FromURLRequest struct {
	URL string `json:"url" binding:"required"` // 食譜網頁網址
}

// ImportResponse 匯入成功的響應
type ImportResponse struct {
	Message string                `json:"message"`
	Recipe  *storage.StoredRecipe `json:"recipe"`
}

// requestIDOf 取得或補發請求識別碼
func requestIDOf(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// userIDOf 取得請求的擁有者識別碼
// 未接驗證系統前由 X-User-ID 標頭帶入，預設為 1
func userIDOf(c *gin.Context) int64 {
	if raw := c.GetHeader("X-User-ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 1
}

// respondError 依錯誤代碼輸出統一格式的錯誤響應
func respondError(c *gin.Context, requestID string, err error) {
	c.JSON(common.ErrorStatus(err), gin.H{
		"error":      err.Error(),
		"code":       common.ErrorCode(err),
		"request_id": requestID,
	})
}

// HandleImportFromURL 抓取網頁、擷取食譜並儲存
func (h *Handler) HandleImportFromURL(c *gin.Context) {
	requestID := requestIDOf(c)

	common.LogInfo("開始處理網址匯入請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req FromURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	text, err := h.scraper.ScrapeURL(c.Request.Context(), req.URL)
	if err != nil {
		common.LogError("網頁抓取失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("url", req.URL),
		)
		respondError(c, requestID, err)
		return
	}

	result, err := h.importService.ImportFromText(c.Request.Context(), recipeCore.ExtractionRequest{
		Text:   text,
		Kind:   recipeCore.SourceURL,
		Source: req.URL,
	})
	if err != nil {
		common.LogError("食譜擷取失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("url", req.URL),
		)
		respondError(c, requestID, err)
		return
	}

	h.persistAndRespond(c, requestID, result)
}

// HandleUpload 接收上傳檔案、擷取食譜並儲存
// 支援 .txt、.pdf 與圖片（圖片先經視覺模型轉寫為文字）
func (h *Handler) HandleUpload(c *gin.Context) {
	requestID := requestIDOf(c)

	common.LogInfo("開始處理檔案匯入請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.LogError("缺少上傳檔案",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	filename := filepath.Base(fileHeader.Filename)
	if !extract.IsAllowedFile(filename) {
		common.LogWarn("不支援的檔案類型",
			zap.String("request_id", requestID),
			zap.String("filename", filename),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unsupported file type",
			"allowed": extract.AllowedExtensions(),
		})
		return
	}
	if fileHeader.Size > h.config.Upload.MaxSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	var result *recipeCore.StructuredRecipe
	if extract.IsImageFile(filename) {
		result, err = h.importFromImageUpload(c, fileHeader, filename)
	} else {
		result, err = h.importFromDocumentUpload(c, fileHeader, filename)
	}
	if err != nil {
		common.LogError("檔案匯入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("filename", filename),
		)
		respondError(c, requestID, err)
		return
	}

	h.persistAndRespond(c, requestID, result)
}

// importFromImageUpload 圖片上傳：正規化為 JPEG data URL 後交給視覺轉寫
func (h *Handler) importFromImageUpload(c *gin.Context, fileHeader *multipart.FileHeader, filename string) (*recipeCore.StructuredRecipe, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "無法開啟上傳檔案", http.StatusBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "無法讀取上傳檔案", http.StatusBadRequest, err)
	}

	imageData, err := h.imageService.EncodeImage(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "圖片格式無效", http.StatusBadRequest, err)
	}

	return h.importService.ImportFromImage(c.Request.Context(), imageData, filename)
}

// importFromDocumentUpload 文件上傳：先落地暫存檔再抽取文字層
func (h *Handler) importFromDocumentUpload(c *gin.Context, fileHeader *multipart.FileHeader, filename string) (*recipeCore.StructuredRecipe, error) {
	tmpPath := filepath.Join(h.config.Upload.Dir, uuid.New().String()+filepath.Ext(filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		return nil, common.NewError(common.ErrCodeInternalError, "無法儲存上傳檔案", http.StatusInternalServerError, err)
	}
	defer os.Remove(tmpPath)

	text, err := extract.TextFromFile(tmpPath)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "無法抽取檔案文字", http.StatusUnprocessableEntity, err)
	}

	return h.importService.ImportFromText(c.Request.Context(), recipeCore.ExtractionRequest{
		Text:   text,
		Kind:   recipeCore.SourceFile,
		Source: filename,
	})
}

// persistAndRespond 儲存擷取結果並回應
func (h *Handler) persistAndRespond(c *gin.Context, requestID string, result *recipeCore.StructuredRecipe) {
	userID := userIDOf(c)
	recipeID, err := h.store.SaveRecipe(c.Request.Context(), userID, result)
	if err != nil {
		common.LogError("食譜儲存失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	stored, err := h.store.GetRecipe(c.Request.Context(), recipeID, userID)
	if err != nil {
		common.LogError("讀回已儲存食譜失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved recipe"})
		return
	}

	common.LogInfo("食譜匯入成功",
		zap.String("request_id", requestID),
		zap.Int64("recipe_id", recipeID),
		zap.String("title", result.Title),
	)

	c.JSON(http.StatusCreated, ImportResponse{
		Message: "Recipe imported successfully",
		Recipe:  stored,
	})
}
