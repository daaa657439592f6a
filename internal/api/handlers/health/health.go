package health

import (
	"net/http"
	"runtime"
	"time"

	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the router.
const (
	ConfigKey = "config"
	CacheKey  = "cache"
	ModelKey  = "model"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Provider  string                 `json:"provider"`
	Model     string                 `json:"model"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Provider: cfg.Generation.Provider,
		Model:    c.GetString(ModelKey),
	}

	if store, ok := c.Get(CacheKey); ok {
		if s, ok := store.(cache.Store); ok && s != nil {
			response.Cache = s.Stats()
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器。
// 未設定 API key 時仍視為就緒，生成結果會降級為空。
func ReadinessCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "ready",
		"generation_configured": cfg.ActiveProvider().APIKey != "",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	v, exists := c.Get(ConfigKey)
	if !exists {
		return nil, false
	}
	cfg, ok := v.(*config.Config)
	return cfg, ok && cfg != nil
}
