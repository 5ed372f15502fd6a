package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to load env file")
			continue
		}
		log.Debug().Str("file", file).Msg("Loaded env file")
	}
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func parseEnvInt(key string, defaultValue int) int {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}

	return parsed
}

func parseEnvFloat(key string, defaultValue float32) float32 {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(val, 32)
	if err != nil {
		log.Warn().Str("key", key).Float32("default", defaultValue).Msg("Invalid float value, using default")
		return defaultValue
	}

	return float32(parsed)
}

// parseEnvDuration accepts Go duration strings ("30s") or a bare number of seconds.
func parseEnvDuration(key string, defaultValue time.Duration) time.Duration {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}

	log.Warn().Str("key", key).Dur("default", defaultValue).Msg("Invalid duration value, using default")
	return defaultValue
}

func parseEnvList(key string, defaultValue []string) []string {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
