package common

import (
	"errors"
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
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Response 轉為 API 錯誤響應；debug 為 true 時附上原始錯誤
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// WithError 複製一份並附上原始錯誤
func (e *CustomError) WithError(err error) *CustomError {
	cp := *e
	cp.Err = err
	return &cp
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
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 504
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeInternalError   = "INTERNAL_ERROR"    // 500
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusGatewayTimeout, nil)
	ErrPayloadTooLarge = NewError(ErrCodePayloadTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
)

// 生成服務錯誤，只在核心內部流動，不會回給呼叫端
var (
	ErrEmptyGeneration    = errors.New("empty generation result")
	ErrGenerationDisabled = errors.New("generation provider not configured")
	ErrCacheMiss          = errors.New("cache miss")
	ErrCacheFull          = errors.New("cache full")
)
