package openai

import (
	"sync"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type Service struct {
	mu          sync.RWMutex
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewService returns nil when OPENAI_API_KEY is not configured.
func NewService() *Service {
	key := config.GetOpenAIKey()

	if key == "" {
		log.Warn().Msg("OpenAI service not configured - OPENAI_API_KEY missing, using stub answers")
		return nil
	}

	log.Info().Str("model", config.GetOpenAIModel()).Msg("Initialising OpenAI service")

	return NewServiceWithConfig(openai.DefaultConfig(key))
}

// NewServiceWithConfig builds the service from an explicit client config.
func NewServiceWithConfig(clientConfig openai.ClientConfig) *Service {
	return &Service{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       config.GetOpenAIModel(),
		maxTokens:   config.GetOpenAIMaxTokens(),
		temperature: config.GetOpenAITemperature(),
	}
}

func (s *Service) GetClient() *openai.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *Service) GetModel() string {
	return s.model
}

func (s *Service) GetMaxTokens() int {
	return s.maxTokens
}

func (s *Service) GetTemperature() float32 {
	return s.temperature
}
