package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/redis"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chatform"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	sessionLifetime = 1 * time.Hour
	redisKeyPrefix  = "chatform:"
)

type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// StateStore keeps the chat form state of each browser session.
type StateStore interface {
	Save(ctx context.Context, sessionID string, state chatform.Snapshot) error
	// Load reports false when the session is unknown.
	Load(ctx context.Context, sessionID string) (chatform.Snapshot, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	redisService *redis.Service
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	state     chatform.Snapshot
	expiresAt time.Time
}

type Service struct {
	store StateStore
}

func NewService(redisService *redis.Service) *Service {
	var store StateStore
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable - falling back to in-memory sessions")
			store = NewMemoryStore()
		} else {
			store = &RedisStore{redisService: redisService}
		}
	} else {
		store = NewMemoryStore()
	}

	return NewServiceWithStore(store)
}

func NewServiceWithStore(store StateStore) *Service {
	return &Service{store: store}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Redis Store implementation
func (rs *RedisStore) Save(ctx context.Context, sessionID string, state chatform.Snapshot) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return rs.redisService.Set(ctx, redisKeyPrefix+sessionID, string(data), sessionLifetime)
}

func (rs *RedisStore) Load(ctx context.Context, sessionID string) (chatform.Snapshot, bool, error) {
	data, err := rs.redisService.Get(ctx, redisKeyPrefix+sessionID)
	if errors.Is(err, redis.ErrNotFound) {
		return chatform.Snapshot{}, false, nil
	}
	if err != nil {
		return chatform.Snapshot{}, false, err
	}

	var state chatform.Snapshot
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return chatform.Snapshot{}, false, err
	}

	return state, true, nil
}

func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return rs.redisService.Delete(ctx, redisKeyPrefix+sessionID)
}

// Memory Store implementation
func (ms *MemoryStore) Save(ctx context.Context, sessionID string, state chatform.Snapshot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[sessionID] = memoryEntry{state: state, expiresAt: ms.now().Add(sessionLifetime)}
	return nil
}

func (ms *MemoryStore) Load(ctx context.Context, sessionID string) (chatform.Snapshot, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	entry, exists := ms.sessions[sessionID]
	if !exists {
		return chatform.Snapshot{}, false, nil
	}
	if ms.now().After(entry.expiresAt) {
		delete(ms.sessions, sessionID)
		return chatform.Snapshot{}, false, nil
	}
	return entry.state, true, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, sessionID)
	return nil
}

// CreateSession starts a new session with an Idle form and sets its cookie
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) (string, error) {
	sessionID := uuid.New().String()
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
		SessionID: sessionID,
	}

	if err := s.store.Save(r.Context(), sessionID, chatform.Snapshot{}); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(config.GetJWTSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	// No Expires: the cookie ends with the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    signedToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteStrictMode,
	})

	log.Debug().Str("session_id", sessionID).Msg("Created chat form session")
	return sessionID, nil
}

// ValidateSession returns the session ID carried by a valid cookie, or an
// empty string when there is none.
func (s *Service) ValidateSession(r *http.Request) (string, error) {
	cookie, err := r.Cookie(config.GetSessionCookieName())
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}

	claims, err := parseClaims(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid session cookie")
		return "", nil
	}

	_, exists, err := s.store.Load(r.Context(), claims.SessionID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}

	return claims.SessionID, nil
}

// EnsureSession returns the current session ID, creating a session if needed
func (s *Service) EnsureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	sessionID, err := s.ValidateSession(r)
	if err != nil {
		return "", err
	}
	if sessionID != "" {
		return sessionID, nil
	}
	return s.CreateSession(w, r)
}

// LoadState returns the form state for a session. Unknown sessions are Idle.
func (s *Service) LoadState(ctx context.Context, sessionID string) (chatform.Snapshot, error) {
	state, _, err := s.store.Load(ctx, sessionID)
	return state, err
}

// SaveState persists the form state for a session
func (s *Service) SaveState(ctx context.Context, sessionID string, state chatform.Snapshot) error {
	return s.store.Save(ctx, sessionID, state)
}

// ClearSession removes the session cookie and its stored state
func (s *Service) ClearSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.GetSessionCookieName()); err == nil {
		if claims, err := parseClaims(cookie.Value); err == nil {
			_ = s.store.Delete(r.Context(), claims.SessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

func parseClaims(value string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return config.GetJWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
