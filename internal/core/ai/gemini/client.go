package gemini

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

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client Gemini generateContent API 客戶端
type Client struct {
	config provider.Config
	client *resty.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 呼叫一次 generateContent，回傳模型的原始文字
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if c.config.APIKey == "" {
		return nil, common.ErrGenerationDisabled
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: firstPositive(req.MaxTokens, c.config.MaxTokens),
			Temperature:     req.Temperature,
		},
	}
	if body.GenerationConfig.Temperature == 0 {
		body.GenerationConfig.Temperature = c.config.Temperature
	}
	if req.ResponseFormat == provider.FormatJSON {
		body.GenerationConfig.ResponseMimeType = "application/json"
	}

	common.LogDebug("Sending request to Gemini",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(req.Prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", c.config.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr apiError
		if perr := common.ParseJSONBytes(resp.Body(), &apiErr); perr == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("Gemini API error (status %d, %s): %s", resp.StatusCode(), apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("Gemini API error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var result generateResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	out := &provider.Response{Text: sb.String()}
	out.Usage.PromptTokens = result.UsageMetadata.PromptTokenCount
	out.Usage.CompletionTokens = result.UsageMetadata.CandidatesTokenCount
	out.Usage.TotalTokens = result.UsageMetadata.TotalTokenCount

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

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
