package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RateLimitChat = "chat"
	RateLimitForm = "form"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "false") == "true"

	configs := map[string]RateLimitConfig{
		RateLimitChat: {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_CHAT", 120), // 120 requests per minute
			Window:  time.Minute,
		},
		RateLimitForm: {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_FORM", 60), // 60 submissions per minute
			Window:  time.Minute,
		},
	}

	if cfg, exists := configs[key]; exists {
		return cfg
	}

	log.Warn().Str("limit_key", key).Msg("No rate limit config found")
	return RateLimitConfig{Enabled: false}
}
