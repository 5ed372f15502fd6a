package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Er-rdhtiwari/ai-app/internal/api/middleware"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/Er-rdhtiwari/ai-app/pkg/httpext"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// HandleChat answers POST /api/chat
func HandleChat(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetRequestID(r.Context())
	if traceID == "" {
		traceID = uuid.New().String()
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Str("trace_id", traceID).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	log.Info().
		Str("trace_id", traceID).
		Int("message_length", len(req.Message)).
		Msg("Chat request received")

	if err := validate.Struct(req); err != nil || strings.TrimSpace(req.Message) == "" {
		log.Warn().Err(err).Str("trace_id", traceID).Msg("Chat request validation failed")
		httpext.JsonError(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	answer, err := chatService.Answer(r.Context(), traceID, req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		httpext.JsonError(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("trace_id", traceID).Msg("Failed to process chat")
		httpext.JsonError(w, "Failed to process chat", http.StatusInternalServerError)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, models.ChatResponse{
		Answer:  answer,
		TraceID: traceID,
	})

	log.Info().
		Str("trace_id", traceID).
		Str("client_ip", r.RemoteAddr).
		Msg("Chat request processed successfully")
}
