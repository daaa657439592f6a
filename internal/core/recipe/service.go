package recipe

import (
	"fridge-recipes/internal/infrastructure/config"
)

const defaultSearchURLBase = "https://cookpad.com/search/"

// Options 食譜服務參數
type Options struct {
	DefaultCandidates int
	MaxCandidates     int
	SearchURLBase     string
}

// OptionsFromConfig 由設定取出食譜服務參數
func OptionsFromConfig(cfg config.RecipesConfig) Options {
	return Options{
		DefaultCandidates: cfg.DefaultCandidates,
		MaxCandidates:     cfg.MaxCandidates,
		SearchURLBase:     cfg.SearchURLBase,
	}
}

// Service 食譜服務：候補清單與作り方
type Service struct {
	generator Generator
	opts      Options
}

// NewService 創建新的食譜服務
func NewService(gen Generator, opts Options) *Service {
	if opts.DefaultCandidates <= 0 {
		opts.DefaultCandidates = 4
	}
	if opts.SearchURLBase == "" {
		opts.SearchURLBase = defaultSearchURLBase
	}
	return &Service{
		generator: gen,
		opts:      opts,
	}
}

// DefaultCandidates 未指定 n 時的候補數
func (s *Service) DefaultCandidates() int {
	return s.opts.DefaultCandidates
}
