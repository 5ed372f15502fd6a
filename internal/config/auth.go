package config

import (
	"sync"
)

const defaultJWTSecret = "dev-session-secret-change-me"

var (
	jwtSecretMu sync.RWMutex
	// jwtSecret overrides JWT_SECRET when set
	jwtSecret []byte
)

// SetJWTSecret temporarily changes the JWT secret and returns a function to restore it
// This is primarily used for testing
func SetJWTSecret(secret []byte) func() {
	jwtSecretMu.Lock()
	previous := jwtSecret
	jwtSecret = secret
	jwtSecretMu.Unlock()

	return func() {
		jwtSecretMu.Lock()
		jwtSecret = previous
		jwtSecretMu.Unlock()
	}
}

// GetJWTSecret returns the secret used to sign session cookies
func GetJWTSecret() []byte {
	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	if jwtSecret != nil {
		return jwtSecret
	}
	return []byte(GetEnvOrDefault("JWT_SECRET", defaultJWTSecret))
}
