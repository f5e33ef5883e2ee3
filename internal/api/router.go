package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nutriscan-api/internal/api/handlers"
	"nutriscan-api/internal/api/handlers/health"
	"nutriscan-api/internal/api/middleware"
	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/core/chat"
	"nutriscan-api/internal/core/mood"
	"nutriscan-api/internal/core/risk"
	"nutriscan-api/internal/core/scan"
	"nutriscan-api/internal/core/substitution"
	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置；最長的路徑是 AI 顧問三次重試
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)；純文字 API 不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

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

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 載入知識庫
	ingredientCatalog, err := catalog.LoadIngredientCatalog(cfg.Catalog.IngredientsPath)
	if err != nil {
		common.LogError("Failed to load ingredient catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load ingredient catalog: %w", err)
	}
	substitutionCatalog, err := catalog.LoadSubstitutionCatalog(cfg.Catalog.SubstitutionsPath)
	if err != nil {
		common.LogError("Failed to load substitution catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load substitution catalog: %w", err)
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("gemini_enabled", cfg.Gemini.Enabled),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ingredients", ingredientCatalog.Len()),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	advisorService := advisor.NewService(advisor.NewClient(cfg))
	matcher := scan.NewMatcher(ingredientCatalog)
	scanService := scan.NewService(matcher)
	riskService := risk.NewService(advisorService, ingredientCatalog, store)
	substitutionService := substitution.NewService(advisorService, substitutionCatalog, store)
	moodService := mood.NewService(advisorService, store)
	chatService := chat.NewService(advisorService, store)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
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
		scanHandler := handlers.NewScanHandler(scanService)
		riskHandler := handlers.NewRiskHandler(scanService, riskService)
		substitutionHandler := handlers.NewSubstitutionHandler(substitutionService)
		moodHandler := handlers.NewMoodHandler(moodService)
		chatHandler := handlers.NewChatHandler(chatService)
		nutritionHandler := handlers.NewNutritionHandler()
		aiStatusHandler := handlers.NewAIStatusHandler(cfg, advisorService, store)

		scanGroup := api.Group("/scan")
		{
			scanGroup.POST("/analyze", scanHandler.HandleAnalyze)
		}

		riskGroup := api.Group("/risk")
		{
			riskGroup.POST("/analyze", riskHandler.HandleAnalyze)
			riskGroup.POST("/quick-check", riskHandler.HandleQuickCheck)
		}

		substitutionGroup := api.Group("/substitution")
		{
			substitutionGroup.POST("/suggest", substitutionHandler.HandleSuggest)
		}

		moodGroup := api.Group("/mood")
		{
			moodGroup.GET("/list", moodHandler.HandleMoods)
			moodGroup.POST("/recommend", moodHandler.HandleRecommend)
		}

		chatGroup := api.Group("/chat")
		{
			chatGroup.POST("/ask", chatHandler.HandleAsk)
		}

		nutritionGroup := api.Group("/nutrition")
		{
			nutritionGroup.POST("/goals", nutritionHandler.HandleGoals)
		}

		api.GET("/ai/status", aiStatusHandler.HandleStatus)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("advisor_configured", advisorService.IsConfigured()),
		zap.Bool("cache_enabled", store != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
