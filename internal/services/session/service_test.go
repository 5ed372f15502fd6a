package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chatform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	t.Cleanup(config.SetJWTSecret([]byte("test-secret")))
	t.Cleanup(config.SetSessionCookieName("test_session"))

	store := NewMemoryStore()
	return NewServiceWithStore(store), store
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestCreateAndValidateSession(t *testing.T) {
	svc, _ := newTestService(t)

	w := httptest.NewRecorder()
	sessionID, err := svc.CreateSession(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure, "plain HTTP requests get a non-secure cookie")
	assert.True(t, cookies[0].Expires.IsZero(), "the cookie lives for the browser session")

	got, err := svc.ValidateSession(requestWithCookies(cookies))
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)

	state, err := svc.LoadState(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, chatform.Idle, state.Display())
}

func TestSecureCookieBehindTLSProxy(t *testing.T) {
	svc, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	_, err := svc.CreateSession(w, req)
	require.NoError(t, err)

	assert.True(t, w.Result().Cookies()[0].Secure)
}

func TestValidateSessionRejects(t *testing.T) {
	svc, store := newTestService(t)

	w := httptest.NewRecorder()
	sessionID, err := svc.CreateSession(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	valid := w.Result().Cookies()

	tests := []struct {
		name    string
		cookies func() []*http.Cookie
		setup   func(t *testing.T)
	}{
		{
			name:    "no cookie",
			cookies: func() []*http.Cookie { return nil },
		},
		{
			name: "garbage cookie",
			cookies: func() []*http.Cookie {
				return []*http.Cookie{{Name: "test_session", Value: "not-a-jwt"}}
			},
		},
		{
			name:    "signed with another secret",
			cookies: func() []*http.Cookie { return valid },
			setup: func(t *testing.T) {
				t.Cleanup(config.SetJWTSecret([]byte("rotated")))
			},
		},
		{
			name:    "state removed from store",
			cookies: func() []*http.Cookie { return valid },
			setup: func(t *testing.T) {
				require.NoError(t, store.Delete(context.Background(), sessionID))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			got, err := svc.ValidateSession(requestWithCookies(tt.cookies()))
			assert.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestEnsureSessionReusesValidSession(t *testing.T) {
	svc, _ := newTestService(t)

	w := httptest.NewRecorder()
	first, err := svc.EnsureSession(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	second, err := svc.EnsureSession(w2, requestWithCookies(w.Result().Cookies()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, w2.Result().Cookies(), "no new cookie for an existing session")
}

func TestSaveAndLoadState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	state := chatform.Snapshot{
		InputText:    "hello",
		LastResponse: &models.ChatResponse{Answer: "hi there", TraceID: "abc-123"},
	}
	require.NoError(t, svc.SaveState(ctx, "session-1", state))

	got, err := svc.LoadState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	unknown, err := svc.LoadState(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, chatform.Snapshot{}, unknown)
}

func TestClearSession(t *testing.T) {
	svc, store := newTestService(t)

	w := httptest.NewRecorder()
	sessionID, err := svc.CreateSession(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	svc.ClearSession(w2, requestWithCookies(w.Result().Cookies()))

	_, exists, err := store.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.False(t, exists)

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", chatform.Snapshot{InputText: "x"}))
	_, exists, _ := store.Load(ctx, "s")
	assert.True(t, exists)

	current = current.Add(sessionLifetime + time.Second)
	_, exists, _ = store.Load(ctx, "s")
	assert.False(t, exists)
}

func TestNewServiceWithoutRedis(t *testing.T) {
	svc := NewService(nil)
	_, ok := svc.store.(*MemoryStore)
	assert.True(t, ok, "memory store is used when Redis is not configured")
}
