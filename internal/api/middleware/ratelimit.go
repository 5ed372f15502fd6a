package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/pkg/httpext"
	"github.com/Er-rdhtiwari/ai-app/pkg/ratelimit"
	"github.com/rs/zerolog/log"
)

func RateLimit(limitKey string) func(http.Handler) http.Handler {
	cfg := config.GetRateLimitConfig(limitKey)
	limiter := ratelimit.NewLimiter(cfg.Window, cfg.MaxHits)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !limiter.Allow(ip) {
				log.Warn().
					Str("client_ip", ip).
					Str("limit_key", limitKey).
					Str("request_id", GetRequestID(r.Context())).
					Msg("Rate limit exceeded")
				httpext.JsonError(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop when behind a proxy
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
