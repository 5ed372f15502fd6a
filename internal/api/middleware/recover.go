package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Er-rdhtiwari/ai-app/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// Recover turns a panicking handler into a JSON 500 carrying the request ID.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			requestID := GetRequestID(r.Context())
			if requestID == "" {
				requestID = "unknown"
			}

			log.Error().
				Str("request_id", requestID).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("Unhandled exception")

			httpext.JsonErrorWithDetails(w, http.StatusInternalServerError, httpext.ErrorResponse{
				Error:     "Internal server error",
				RequestID: requestID,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
