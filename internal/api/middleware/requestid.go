package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"

	// RequestIDHeader carries the request ID on every response
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags each request with a fresh UUID, exposes it in the
// X-Request-ID response header and logs the request start and completion.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client", r.RemoteAddr).
			Msg("Request started")

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

		log.Info().
			Str("request_id", requestID).
			Int("status_code", metrics.Code).
			Str("process_time", fmt.Sprintf("%.3fs", metrics.Duration.Seconds())).
			Int64("bytes_written", metrics.Written).
			Msg("Request completed")
	})
}

// GetRequestID returns the request ID stored by RequestID, or "" outside it
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
