package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns default when env not set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
		{
			name:         "returns env value when set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "whitespace counts as unset",
			key:          "TEST_KEY_3",
			defaultValue: "default",
			envValue:     "   ",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			got := GetEnvOrDefault(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("GetEnvOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_NAME", "APP_VERSION", "ENVIRONMENT", "LOG_LEVEL", "PORT", "CORS_ORIGINS",
		"OPENAI_MODEL", "OPENAI_MAX_TOKENS", "OPENAI_TEMPERATURE",
		"CHAT_API_URL", "CHAT_API_TIMEOUT", "BACKEND_URL",
	} {
		t.Setenv(key, "")
	}

	assert.Equal(t, "AI App Backend", GetAppName())
	assert.Equal(t, "1.0.0", GetAppVersion())
	assert.Equal(t, "dev", GetEnvironment())
	assert.Equal(t, "INFO", GetLogLevel())
	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, []string{"*"}, GetCORSOrigins())
	assert.Equal(t, "gpt-3.5-turbo", GetOpenAIModel())
	assert.Equal(t, 500, GetOpenAIMaxTokens())
	assert.InDelta(t, 0.7, GetOpenAITemperature(), 0.0001)
	assert.Equal(t, "http://localhost:8080", GetChatAPIURL())
	assert.Equal(t, time.Duration(0), GetChatAPITimeout())
	assert.Empty(t, GetBackendURL())
}

func TestTypedParsers(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "not-a-number")
	assert.Equal(t, 500, GetOpenAIMaxTokens(), "invalid ints fall back to the default")

	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	assert.InDelta(t, 0.2, GetOpenAITemperature(), 0.0001)

	t.Setenv("CHAT_API_TIMEOUT", "15")
	assert.Equal(t, 15*time.Second, GetChatAPITimeout())
	t.Setenv("CHAT_API_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetChatAPITimeout())

	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetCORSOrigins())

	t.Setenv("CHAT_API_URL", "https://chat.example/")
	assert.Equal(t, "https://chat.example", GetChatAPIURL())

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "DEBUG", GetLogLevel())
}

func TestGetRateLimitConfig(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_CHAT", "5")

	chat := GetRateLimitConfig(RateLimitChat)
	assert.True(t, chat.Enabled)
	assert.Equal(t, 5, chat.MaxHits)
	assert.Equal(t, time.Minute, chat.Window)

	form := GetRateLimitConfig(RateLimitForm)
	assert.Equal(t, 60, form.MaxHits)

	unknown := GetRateLimitConfig("unknown")
	assert.False(t, unknown.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("DOTENV_TEST_VALUE=from-file\nDOTENV_TEST_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv("DOTENV_TEST_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("DOTENV_TEST_VALUE") })

	LoadDotEnv(file, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "from-file", os.Getenv("DOTENV_TEST_VALUE"))
	assert.Equal(t, "from-env", os.Getenv("DOTENV_TEST_KEEP"), "existing variables are not overridden")
}
