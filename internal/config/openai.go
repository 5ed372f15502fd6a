package config

import (
	"github.com/rs/zerolog/log"
)

// GetOpenAIKey returns the OpenAI key. An empty key keeps the chat backend on its stub answer.
func GetOpenAIKey() string {
	value := GetEnvOrDefault("OPENAI_API_KEY", "")
	if value == "" {
		log.Debug().Msg("OPENAI_API_KEY not set")
	}
	return value
}

func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo")
}

func GetOpenAIMaxTokens() int {
	return parseEnvInt("OPENAI_MAX_TOKENS", 500)
}

func GetOpenAITemperature() float32 {
	return parseEnvFloat("OPENAI_TEMPERATURE", 0.7)
}
