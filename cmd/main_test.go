package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/api/middleware"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/chatapi"
	"github.com/Er-rdhtiwari/ai-app/internal/services"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/Er-rdhtiwari/ai-app/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T, chatAPIURL string) *services.Services {
	t.Helper()
	chatService, err := chat.NewService(nil)
	require.NoError(t, err)

	return services.New(
		chatapi.NewClient(chatAPIURL),
		chatService,
		nil,
		nil,
		session.NewServiceWithStore(session.NewMemoryStore()),
	)
}

func TestMainServer(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("CORS_ORIGINS", "")

	router, err := setupRouter(newTestServices(t, "http://127.0.0.1:0"))
	require.NoError(t, err)

	// Start test server
	server := httptest.NewServer(router)
	defer server.Close()

	t.Run("health endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/health")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("chat endpoint", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/chat", "application/json", strings.NewReader(`{
			"message": "Hello, AI!"
		}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}

		var body models.ChatResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode chat response: %v", err)
		}
		assert.Contains(t, body.Answer, "Echo: Hello, AI!")
		assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.TraceID)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/chat", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/invalid")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})
}

func TestSetupRouterProxiesToBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChatResponse{Answer: "from backend", TraceID: "backend-trace"})
	}))
	defer backend.Close()

	t.Setenv("BACKEND_URL", backend.URL)

	router, err := setupRouter(newTestServices(t, "http://127.0.0.1:0"))
	require.NoError(t, err)

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json", strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body models.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "from backend", body.Answer)
	assert.Equal(t, "backend-trace", body.TraceID)
}

func TestSetupRouterRejectsBadBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "://not a url")

	_, err := setupRouter(newTestServices(t, "http://127.0.0.1:0"))
	assert.Error(t, err)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	server := &http.Server{
		Addr:    addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, server) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
