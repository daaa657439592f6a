package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/core/ai/gemini"
	"fridge-recipes/internal/core/ai/openrouter"
	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務：對供應商做單次 JSON 生成呼叫，可選擇快取結果
type Service struct {
	provider provider.Provider
	cache    cache.Store
}

// NewProvider 依設定建立生成供應商
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	active := cfg.ActiveProvider()
	pcfg := provider.Config{
		APIKey:      active.APIKey,
		BaseURL:     active.BaseURL,
		Model:       cfg.Generation.Model,
		Timeout:     cfg.Generation.Timeout,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
	}

	if pcfg.APIKey == "" {
		common.LogWarn("Generation API key not set, every generation call will degrade to an empty result",
			zap.String("provider", cfg.Generation.Provider),
		)
	}

	switch cfg.Generation.Provider {
	case "gemini":
		return gemini.NewClient(pcfg), nil
	case "openrouter":
		return openrouter.NewClient(pcfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}

// NewService 創建 AI 服務；store 為 nil 表示不使用快取
func NewService(p provider.Provider, store cache.Store) *Service {
	return &Service{
		provider: p,
		cache:    store,
	}
}

// Generate 以 JSON 輸出模式呼叫模型一次，回傳去除前後空白的原始文字。
// 不重試；空白回應視為錯誤。非 JSON 的回應照樣回傳但不快取。
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", common.ErrGenerationDisabled
	}

	model := s.provider.GetModel()
	key := cache.Key(model, prompt)

	if s.cache != nil {
		if val, err := s.cache.Get(ctx, key); err == nil && val != "" {
			return val, nil
		} else if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.Error(err))
		}
	}

	if timeout := s.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, &provider.Request{
		Prompt:         prompt,
		ResponseFormat: provider.FormatJSON,
	})
	if err == nil && (resp == nil || strings.TrimSpace(resp.Text) == "") {
		err = common.ErrEmptyGeneration
	}
	common.LogAICall(model, time.Since(start), err, common.RequestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)

	// 只快取可解析的 JSON，壞掉的回應下次仍會重新呼叫模型
	if s.cache != nil {
		if _, perr := common.ParseValue(common.UnwrapCodeFence(text)); perr != nil {
			common.LogDebug("模型輸出不是 JSON，不寫入快取", zap.String("model", model))
		} else if err := s.cache.Set(ctx, key, text); err != nil {
			common.LogWarn("快取寫入失敗", zap.Error(err))
		}
	}

	return text, nil
}

// Model 回傳目前使用的模型名稱
func (s *Service) Model() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.GetModel()
}

// Close 關閉供應商連線
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
