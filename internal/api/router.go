package api

import (
	"fmt"
	"net/http"
	"time"

	"fridge-recipes/internal/api/handlers/health"
	recipeHandler "fridge-recipes/internal/api/handlers/recipe"
	"fridge-recipes/internal/api/middleware"
	"fridge-recipes/internal/core/ai/cache"
	recipeService "fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；store 可為 nil（不使用快取）
func SetupRouter(cfg *config.Config, store cache.Store, gen recipeService.Generator) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

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
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置；允許任意來源時不能同時帶憑證
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.BodyLimit))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	model := ""
	if m, ok := gen.(interface{ Model() string }); ok {
		model = m.Model()
	}

	recipeSvc := recipeService.NewService(gen, recipeService.OptionsFromConfig(cfg.Recipes))

	common.LogInfo("Recipe service initialized",
		zap.String("provider", cfg.Generation.Provider),
		zap.String("model", model),
		zap.Bool("cache_enabled", store != nil),
		zap.Int("default_candidates", cfg.Recipes.DefaultCandidates),
		zap.Int("max_candidates", cfg.Recipes.MaxCandidates),
	)

	// 注入健康檢查需要的資訊
	router.Use(func(c *gin.Context) {
		c.Set(health.ConfigKey, cfg)
		c.Set(health.ModelKey, model)
		if store != nil {
			c.Set(health.CacheKey, store)
		}
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 食譜路由
	h := recipeHandler.NewHandler(recipeSvc, cfg.App.Debug)
	router.POST("/ai-recipes", h.HandleListCandidates)
	router.POST("/ai-recipe-detail", h.HandleRecipeDetail)

	common.LogInfo("Router setup completed successfully",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.BodyLimit),
		zap.Strings("allow_origins", cfg.CORS.AllowOrigins),
	)

	return router, nil
}
