package common

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WithRequestID 將請求 ID 放入 context，方便核心層記錄日誌
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom 取出請求 ID，不存在時回傳空字串
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
