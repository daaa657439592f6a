package middleware

import (
	"time"

	"fridge-recipes/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys the recipe handlers set for the request log.
const (
	ResultCountKey = "result_count"
	DegradedKey    = "degraded"
)

// RecordOutcome 記錄食譜請求的結果筆數；筆數為 0 視為降級（模型失敗或輸出無效）
func RecordOutcome(c *gin.Context, count int) {
	c.Set(ResultCountKey, count)
	c.Set(DegradedKey, count == 0)
}

// Logger 日誌中間件，食譜路由會額外帶上結果筆數與是否降級
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		// requestid 中間件排在後面，回應標頭此時才有值
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		}

		if n, ok := c.Get(ResultCountKey); ok {
			fields = append(fields, zap.Any("result_count", n))
		}
		degraded := c.GetBool(DegradedKey)
		if degraded {
			fields = append(fields, zap.Bool("degraded", true))
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			common.LogError("伺服器錯誤", fields...)
		case status >= 400:
			common.LogWarn("用戶端錯誤", fields...)
		case degraded:
			// 仍回 200，但使用者拿到的是空結果
			common.LogWarn("請求完成（空結果）", fields...)
		default:
			common.LogInfo("請求完成", fields...)
		}
	}
}

// Recovery 恢復中間件
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(common.ErrInternalError.Status, common.ErrInternalError.Response(false))
			}
		}()

		c.Next()
	}
}
