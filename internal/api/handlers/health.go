package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/pkg/httpext"
	"github.com/rs/zerolog/log"
)

const serviceName = "ai-app-backend"

// Pinger is a dependency the readiness probe checks
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type InfoResponse struct {
	App         string `json:"app"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HandleHealth is the liveness probe
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("Health check requested")
	httpext.JsonResponse(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}

// HandleReady is the readiness probe. A nil redis means Redis is not in use.
func HandleReady(redis Pinger, w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"api": "ok", "redis": "disabled"}
	status, code := "ready", http.StatusOK

	if redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := redis.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Readiness check failed - Redis unreachable")
			checks["redis"] = "unavailable"
			status, code = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	httpext.JsonResponse(w, code, ReadyResponse{Status: status, Checks: checks})
}

// HandleInfo describes the running application
func HandleInfo(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, InfoResponse{
		App:         config.GetAppName(),
		Version:     config.GetAppVersion(),
		Environment: config.GetEnvironment(),
	})
}
