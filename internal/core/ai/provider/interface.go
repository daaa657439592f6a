package provider

import (
	"context"
	"time"
)

// ResponseFormat 要求模型輸出的格式
type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "json"
)

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Prompt         string         `json:"prompt"`
	ResponseFormat ResponseFormat `json:"response_format,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Temperature    float64        `json:"temperature,omitempty"`
}

// Response 表示從 AI 提供者收到的響應；Text 為未經驗證的原始文字
type Response struct {
	Text  string `json:"text"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// GetTimeout 獲取請求超時時間
	GetTimeout() time.Duration

	// Close 關閉提供者連接
	Close() error
}

// Config 定義 AI 提供者配置
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	BaseURL     string
	MaxTokens   int
	Temperature float64
}
