package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config provider.Config
	client *resty.Client
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat 輸出格式
type ResponseFormat struct {
	Type string `json:"type"`
}

// Request 表示 API 請求
type Request struct {
	Messages       []Message       `json:"messages"`
	Model          string          `json:"model,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message Message `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Error 表示 API 錯誤
type Error struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://fridge-recipes.app").
		SetHeader("X-Title", "Fridge Recipes").
		SetTimeout(cfg.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if c.config.APIKey == "" {
		return nil, common.ErrGenerationDisabled
	}

	body := &Request{
		Model: c.config.Model,
		Messages: []Message{
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if body.MaxTokens <= 0 {
		body.MaxTokens = c.config.MaxTokens
	}
	if body.Temperature == 0 {
		body.Temperature = c.config.Temperature
	}
	if req.ResponseFormat == provider.FormatJSON {
		body.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	common.LogDebug("Sending request to OpenRouter",
		zap.String("model", body.Model),
		zap.Int("messages", len(body.Messages)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	// 檢查 HTTP 狀態碼
	if resp.StatusCode() != http.StatusOK {
		var apiErr Error
		if perr := common.ParseJSONBytes(resp.Body(), &apiErr); perr == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("OpenRouter API error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("OpenRouter API error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析響應
	var response Response
	if err := common.ParseJSONBytes(resp.Body(), &response); err != nil {
		return nil, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenRouter response")
	}

	out := &provider.Response{Text: response.Choices[0].Message.Content}
	out.Usage.PromptTokens = response.Usage.PromptTokens
	out.Usage.CompletionTokens = response.Usage.CompletionTokens
	out.Usage.TotalTokens = response.Usage.TotalTokens

	return out, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
