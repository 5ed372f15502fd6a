package config

import "sync"

var (
	sessionCookieMu sync.RWMutex
	// sessionCookieName overrides SESSION_COOKIE_NAME when set
	sessionCookieName string
)

// GetSessionCookieName returns the configured session cookie name
func GetSessionCookieName() string {
	sessionCookieMu.RLock()
	defer sessionCookieMu.RUnlock()
	if sessionCookieName != "" {
		return sessionCookieName
	}
	return GetEnvOrDefault("SESSION_COOKIE_NAME", "ai_app_session")
}

// SetSessionCookieName temporarily changes the session cookie name and returns a function to restore it
// This is primarily used for testing
func SetSessionCookieName(name string) func() {
	sessionCookieMu.Lock()
	previous := sessionCookieName
	sessionCookieName = name
	sessionCookieMu.Unlock()

	return func() {
		sessionCookieMu.Lock()
		sessionCookieName = previous
		sessionCookieMu.Unlock()
	}
}
