package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/api/handlers"
	"github.com/Er-rdhtiwari/ai-app/internal/api/middleware"
	"github.com/Er-rdhtiwari/ai-app/internal/api/proxy"
	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/services"
	"github.com/Er-rdhtiwari/ai-app/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadDotEnv(".env", ".env.local")
	logger.Init(config.GetLogLevel(), config.GetEnvironment())

	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer func() {
		if err := svcs.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close services cleanly")
		}
	}()

	router, err := setupRouter(svcs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up router")
	}

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, server); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

// run serves until ctx is cancelled, then drains in-flight requests
func run(ctx context.Context, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", server.Addr).
			Str("app", config.GetAppName()).
			Str("version", config.GetAppVersion()).
			Str("environment", config.GetEnvironment()).
			Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupRouter(svcs *services.Services) (http.Handler, error) {
	var apiUpstream http.Handler
	if backend := config.GetBackendURL(); backend != "" {
		upstream, err := proxy.New(backend)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_URL: %w", err)
		}
		apiUpstream = upstream
	}

	r := mux.NewRouter()
	handlers.RegisterRoutes(r, svcs, apiUpstream)

	return middleware.RequestID(middleware.Recover(middleware.CORS(config.GetCORSOrigins())(r))), nil
}
