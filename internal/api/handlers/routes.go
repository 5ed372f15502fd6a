package handlers

import (
	"net/http"

	"github.com/Er-rdhtiwari/ai-app/internal/api/middleware"
	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/services"
	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the chat form page and the /api routes. A non-nil
// apiUpstream replaces the local /api routes with a passthrough.
func RegisterRoutes(router *mux.Router, svcs *services.Services, apiUpstream http.Handler) {
	api := router.PathPrefix("/api").Subrouter()

	if apiUpstream != nil {
		api.PathPrefix("/").Handler(apiUpstream)
	} else {
		api.Handle("/chat", middleware.RateLimit(config.RateLimitChat)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			HandleChat(svcs.GetChatService(), w, r)
		}))).Methods("POST")

		api.HandleFunc("/health", HandleHealth).Methods("GET")

		api.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			var pinger Pinger
			if redisService := svcs.GetRedisService(); redisService != nil {
				pinger = redisService
			}
			HandleReady(pinger, w, r)
		}).Methods("GET")
	}

	form := NewFormHandler(svcs.GetSessionService(), svcs.GetChatAPIClient(), config.GetAppVersion())

	// Must be registered ahead of the page route to win the match
	router.HandleFunc("/", HandleInfo).
		Methods("GET").
		HeadersRegexp("Accept", "application/json")

	router.HandleFunc("/", form.ServeForm).Methods("GET")
	router.Handle("/", middleware.RateLimit(config.RateLimitForm)(http.HandlerFunc(form.SubmitForm))).Methods("POST")
}
