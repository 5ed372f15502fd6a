package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/rs/zerolog/log"
)

const chatPath = "/api/chat"

// Client posts messages to a chat backend's /api/chat endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// NewClient creates a client for the backend at baseURL (scheme and host, no path).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat sends one message and decodes the answer. There are no retries.
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("url", req.URL.String()).
		Int("message_length", len(message)).
		Msg("Sending chat request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL.String()).Msg("Chat request failed")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("Chat endpoint returned non-success status")
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("Chat endpoint returned invalid JSON")
		return nil, &ParseError{Err: err}
	}

	log.Debug().
		Str("trace_id", out.TraceID).
		Str("request_id", resp.Header.Get("X-Request-ID")).
		Msg("Chat response received")

	return &out, nil
}
