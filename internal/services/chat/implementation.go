package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/openai"
	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful assistant."

// ErrEmptyMessage is returned for empty or whitespace-only messages
var ErrEmptyMessage = errors.New("message cannot be empty")

type Implementation struct {
	openAIService *openai.Service
}

// NewService creates the chat service. Without an OpenAI service every message
// gets the stub echo answer.
func NewService(openAIService *openai.Service) (*Implementation, error) {
	return &Implementation{
		openAIService: openAIService,
	}, nil
}

// UsesOpenAI reports whether answers come from the OpenAI API
func (s *Implementation) UsesOpenAI() bool {
	return s.openAIService != nil
}

func (s *Implementation) Answer(ctx context.Context, traceID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	if s.openAIService == nil {
		log.Info().Str("trace_id", traceID).Msg("Returning stub response")
		return StubAnswer(message), nil
	}

	req := goopenai.ChatCompletionRequest{
		Model: s.openAIService.GetModel(),
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   s.openAIService.GetMaxTokens(),
		Temperature: s.openAIService.GetTemperature(),
	}

	log.Info().Str("trace_id", traceID).Str("model", req.Model).Msg("Calling OpenAI API")

	resp, err := s.openAIService.GetClient().CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("trace_id", traceID).Msg("Error calling OpenAI API")
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	log.Info().
		Str("trace_id", traceID).
		Str("model", resp.Model).
		Int("tokens_used", resp.Usage.TotalTokens).
		Msg("OpenAI response received")

	return resp.Choices[0].Message.Content, nil
}

// StubAnswer is the answer given when no OpenAI key is configured
func StubAnswer(message string) string {
	return fmt.Sprintf("Echo: %s (This is a stub response. Configure OPENAI_API_KEY to enable AI responses.)", message)
}
