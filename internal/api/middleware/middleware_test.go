package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestRateLimiterExhaustsTokens(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(1, time.Minute))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestBodySizeLimitRejectsOversize(t *testing.T) {
	router := gin.New()
	router.Use(BodySizeLimit(16))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("a", 64)))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDeduplicationBlocksRepeatedBody(t *testing.T) {
	cfg := &config.Config{DedupWindow: time.Minute}

	router := gin.New()
	router.Use(Deduplication(cfg))
	router.POST("/import", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := `{"url": "https://example.com/dedup-test"}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/import", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/import", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 不同內容不受影響
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/import", strings.NewReader(`{"url": "https://example.com/other"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeduplicationIgnoresGET(t *testing.T) {
	cfg := &config.Config{DedupWindow: time.Minute}

	router := gin.New()
	router.Use(Deduplication(cfg))
	router.GET("/list", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/list", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
