package config

import "strings"

func GetAppName() string {
	return GetEnvOrDefault("APP_NAME", "AI App Backend")
}

func GetAppVersion() string {
	return GetEnvOrDefault("APP_VERSION", "1.0.0")
}

func GetEnvironment() string {
	return GetEnvOrDefault("ENVIRONMENT", "dev")
}

func GetLogLevel() string {
	return strings.ToUpper(GetEnvOrDefault("LOG_LEVEL", "INFO"))
}

func GetPort() string {
	return GetEnvOrDefault("PORT", "8080")
}

// GetCORSOrigins returns the allowed CORS origins, "*" when unset
func GetCORSOrigins() []string {
	return parseEnvList("CORS_ORIGINS", []string{"*"})
}
