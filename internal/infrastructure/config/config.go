package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Generation GenerationConfig `mapstructure:"generation"`
	Gemini     ProviderConfig   `mapstructure:"gemini"`
	OpenRouter ProviderConfig   `mapstructure:"openrouter"`
	Recipes    RecipesConfig    `mapstructure:"recipes"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	BodyLimit  int64            `mapstructure:"body_limit"`
	LogLevel   string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// GenerationConfig 生成服務設定
type GenerationConfig struct {
	Provider    string        `mapstructure:"provider"` // gemini | openrouter
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

// ProviderConfig 單一 AI 供應商的連線設定
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// RecipesConfig 食譜相關設定
type RecipesConfig struct {
	DefaultCandidates int    `mapstructure:"default_candidates"`
	MaxCandidates     int    `mapstructure:"max_candidates"`
	SearchURLBase     string `mapstructure:"search_url_base"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory | redis
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CORSConfig 跨域設定
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// ActiveProvider 回傳目前選用供應商的連線設定
func (c *Config) ActiveProvider() ProviderConfig {
	if c.Generation.Provider == "openrouter" {
		return c.OpenRouter
	}
	return c.Gemini
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時只使用環境變數
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"server.port":         "PORT",
		"generation.provider": "GENERATION_PROVIDER",
		"generation.model":    "GENERATION_MODEL",
		"generation.timeout":  "GENERATION_TIMEOUT",
		"gemini.api_key":      "GEMINI_API_KEY",
		"openrouter.api_key":  "OPENROUTER_API_KEY",
		"cache.enabled":       "CACHE_ENABLED",
		"cache.backend":       "CACHE_BACKEND",
		"redis.addr":          "REDIS_ADDR",
		"redis.password":      "REDIS_PASSWORD",
		"log_level":           "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "fridge-recipes")

	// 伺服器設定
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "80s")

	// 生成服務設定
	v.SetDefault("generation.provider", "gemini")
	v.SetDefault("generation.model", "gemini-2.5-flash")
	v.SetDefault("generation.timeout", "60s")
	v.SetDefault("generation.max_tokens", 0) // 0 表示交給供應商決定
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")

	// 食譜設定
	v.SetDefault("recipes.default_candidates", 4)
	v.SetDefault("recipes.max_candidates", 8)
	v.SetDefault("recipes.search_url_base", "https://cookpad.com/search/")

	// 快取設定（預設關閉：每個請求只呼叫一次模型）
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("body_limit", 1<<20) // 1MB
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Generation.Provider {
	case "gemini", "openrouter":
	default:
		return fmt.Errorf("unknown generation provider %q", config.Generation.Provider)
	}
	if config.Generation.Model == "" {
		return fmt.Errorf("generation model is required")
	}
	if config.Generation.Timeout <= 0 {
		return fmt.Errorf("invalid generation timeout")
	}

	if config.Recipes.DefaultCandidates < 0 {
		return fmt.Errorf("invalid default candidates")
	}
	if config.Recipes.MaxCandidates <= 0 {
		return fmt.Errorf("invalid max candidates")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case "memory":
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case "redis":
			if config.Redis.Addr == "" {
				return fmt.Errorf("redis addr is required for redis cache")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.BodyLimit <= 0 {
		return fmt.Errorf("invalid body limit")
	}
	if len(config.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("cors allow_origins must not be empty")
	}

	return nil
}
