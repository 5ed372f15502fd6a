package services

import (
	"fmt"
	"sync"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/chatapi"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/openai"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/redis"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat"
	"github.com/Er-rdhtiwari/ai-app/internal/services/session"
	"github.com/rs/zerolog/log"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

type Services struct {
	chatAPIClient  *chatapi.Client
	chatService    *chat.Implementation
	openAIService  *openai.Service
	redisService   *redis.Service
	sessionService *session.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Initialize Redis service (optional)
	redisService := redis.NewService()
	log.Info().Bool("enabled", redisService != nil).Msg("Initializing Redis service")

	// Initialize OpenAI service (optional, stub answers without it)
	openAIService := openai.NewService()

	chatService, err := chat.NewService(openAIService)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	log.Info().Bool("openai", chatService.UsesOpenAI()).Msg("Initializing chat service")

	// Initialize session service with optional Redis
	sessionService := session.NewService(redisService)
	log.Info().Msg("Initializing session service")

	chatAPIClient := chatapi.NewClient(config.GetChatAPIURL(), chatapi.WithTimeout(config.GetChatAPITimeout()))
	log.Info().Str("url", chatAPIClient.BaseURL()).Msg("Initializing chat API client")

	log.Info().Msg("All services initialized successfully")

	return New(chatAPIClient, chatService, openAIService, redisService, sessionService), nil
}

// New assembles a container from already built services
func New(
	chatAPIClient *chatapi.Client,
	chatService *chat.Implementation,
	openAIService *openai.Service,
	redisService *redis.Service,
	sessionService *session.Service,
) *Services {
	return &Services{
		chatAPIClient:  chatAPIClient,
		chatService:    chatService,
		openAIService:  openAIService,
		redisService:   redisService,
		sessionService: sessionService,
	}
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetChatAPIClient returns the client the chat form submits through
func (s *Services) GetChatAPIClient() *chatapi.Client {
	return s.chatAPIClient
}

// GetSessionService returns the session service
func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

// GetRedisService returns the Redis service, nil when not configured
func (s *Services) GetRedisService() *redis.Service {
	return s.redisService
}

// Close releases connections held by the services
func (s *Services) Close() error {
	if s.redisService != nil {
		return s.redisService.Close()
	}
	return nil
}
