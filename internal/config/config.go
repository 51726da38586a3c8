package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is required")
	ErrMissingToken  = errors.New("TELEGRAM_BOT_TOKEN is required")
)

type Config struct {
	YouTube   YouTubeConfig
	Telegram  TelegramConfig
	Database  DatabaseConfig
	Log       LogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type YouTubeConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type TelegramConfig struct {
	Token string
}

// Database is optional: an empty URL disables search history persistence.
type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type MetricsConfig struct {
	Addr string
}

func Load() (*Config, error) {
	cfg := &Config{
		YouTube: YouTubeConfig{
			APIKey:  os.Getenv("YOUTUBE_API_KEY"),
			BaseURL: getEnvOrDefault("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),
			Timeout: time.Duration(getEnvIntOrDefault("YOUTUBE_TIMEOUT_SEC", 30)) * time.Second,
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 900)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		},
		Metrics: MetricsConfig{
			Addr: os.Getenv("METRICS_ADDR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ValidateBot adds the checks only the bot binary needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
