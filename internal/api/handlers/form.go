package handlers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/Er-rdhtiwari/ai-app/internal/api/middleware"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chatform"
	"github.com/Er-rdhtiwari/ai-app/internal/services/session"
	"github.com/rs/zerolog/log"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Message  string
	Loading  bool
	Error    string
	Response *models.ChatResponse
	Version  string
}

// FormHandler serves the chat form page. Each browser session owns one form
// whose state lives in the session store between requests.
type FormHandler struct {
	sessions *session.Service
	client   chatform.Client
	version  string
}

func NewFormHandler(sessions *session.Service, client chatform.Client, version string) *FormHandler {
	return &FormHandler{
		sessions: sessions,
		client:   client,
		version:  version,
	}
}

// ServeForm renders GET /. A reload starts from an Idle form unless the
// session still has a submission in flight.
func (h *FormHandler) ServeForm(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessions.EnsureSession(w, r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to establish chat form session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	state, err := h.sessions.LoadState(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load chat form state")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !state.Submitting {
		state = chatform.Snapshot{}
		if err := h.sessions.SaveState(r.Context(), sessionID, state); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to reset chat form state")
		}
	}

	h.render(w, http.StatusOK, state)
}

// SubmitForm handles POST / with a form-encoded message field.
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	message := r.PostFormValue("message")

	sessionID, err := h.sessions.EnsureSession(w, r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to establish chat form session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	state, err := h.sessions.LoadState(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load chat form state")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if state.Submitting {
		log.Warn().Str("session_id", sessionID).Msg("Rejected chat form submission while another is in flight")
		h.render(w, http.StatusConflict, state)
		return
	}

	// Persisting must outlive a client disconnect or the session would stay Loading.
	saveCtx := context.WithoutCancel(r.Context())
	form := chatform.Restore(state, h.client, chatform.WithObserver(func(s chatform.Snapshot) {
		if err := h.sessions.SaveState(saveCtx, sessionID, s); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to save chat form state")
		}
	}))

	err = form.Submit(r.Context(), message)
	if errors.Is(err, chatform.ErrSubmitInFlight) {
		h.render(w, http.StatusConflict, form.Snapshot())
		return
	}

	log.Info().
		Str("session_id", sessionID).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("display", form.Snapshot().Display().String()).
		Bool("failed", err != nil).
		Msg("Chat form submission settled")

	h.render(w, http.StatusOK, form.Snapshot())
}

func (h *FormHandler) render(w http.ResponseWriter, code int, state chatform.Snapshot) {
	data := pageData{
		Message:  state.InputText,
		Loading:  state.Submitting,
		Error:    state.LastError,
		Response: state.LastResponse,
		Version:  h.version,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("Failed to render chat form")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
