package config

import (
	"github.com/rs/zerolog/log"
)

func GetRedisURL() string {
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		log.Debug().Msg("REDIS_URL not set - sessions will be kept in memory")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
