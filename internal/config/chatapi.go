package config

import (
	"strings"
	"time"
)

// GetChatAPIURL returns the base URL the chat form posts to. It defaults to
// this server so the form and the API can run as one process.
func GetChatAPIURL() string {
	return strings.TrimRight(GetEnvOrDefault("CHAT_API_URL", "http://localhost:"+GetPort()), "/")
}

// GetChatAPITimeout returns the chat client timeout. Zero means no timeout.
func GetChatAPITimeout() time.Duration {
	return parseEnvDuration("CHAT_API_TIMEOUT", 0)
}

// GetBackendURL returns the upstream /api/* requests are forwarded to.
// An empty value serves the API from this process.
func GetBackendURL() string {
	return strings.TrimRight(GetEnvOrDefault("BACKEND_URL", ""), "/")
}
