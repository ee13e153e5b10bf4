package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-importer/internal/api/handlers/health"
	recipeHandler "recipe-importer/internal/api/handlers/recipe"
	"recipe-importer/internal/api/middleware"
	"recipe-importer/internal/core/ai/cache"
	"recipe-importer/internal/core/ai/service"
	recipeCore "recipe-importer/internal/core/recipe"
	"recipe-importer/internal/core/scraper"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/infrastructure/storage"
	"recipe-importer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置，需涵蓋一次抓取加一次模型呼叫
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheStore cache.Store, store *storage.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("vision_model", cfg.OpenRouter.VisionModel),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	aiService := service.NewService(cfg, cacheStore)
	if aiService == nil {
		common.LogError("Failed to initialize AI service")
		return nil, fmt.Errorf("failed to initialize AI service")
	}

	importService := recipeCore.NewImportService(aiService)
	webScraper := scraper.NewScraper(cfg)

	handler := recipeHandler.NewHandler(cfg, importService, webScraper, store)

	// 全局中間件：設置超時與配置注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 匯入路由成本高，額外套用去重與速率限制
		importGroup := api.Group("/recipes")
		importGroup.Use(middleware.Deduplication(cfg))
		if cfg.RateLimit.Enabled {
			importGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		{
			importGroup.POST("/from-url", handler.HandleImportFromURL)
			importGroup.POST("/upload", handler.HandleUpload)
			importGroup.GET("", handler.HandleListRecipes)
		}

		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.GET("/:id", handler.HandleGetRecipe)
			recipeGroup.PUT("/:id", handler.HandleUpdateRecipe)
			recipeGroup.DELETE("/:id", handler.HandleDeleteRecipe)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
