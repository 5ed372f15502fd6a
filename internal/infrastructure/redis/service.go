package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by Get for missing keys
var ErrNotFound = errors.New("redis: key not found")

type Service struct {
	client *redis.Client
}

const connectTimeout = 5 * time.Second

// NewService connects to REDIS_URL. It returns nil when Redis is not
// configured or not reachable, and callers fall back to in-memory state.
func NewService() *Service {
	url := config.GetRedisURL()

	if url == "" {
		log.Warn().Msg("Redis URL not configured - session state stays in memory")
		return nil
	}

	opts, err := newOptions(url, config.GetRedisPassword())
	if err != nil {
		log.Error().Err(err).Msg("Invalid Redis URL - session state stays in memory")
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().
			Err(err).
			Str("addr", opts.Addr).
			Msg("Failed to establish Redis connection")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Redis connection established")

	return NewServiceWithClient(client)
}

// newOptions accepts either a bare host:port or a redis:// / rediss:// URL.
// An explicit password overrides one embedded in the URL.
func newOptions(url, password string) (*redis.Options, error) {
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return &redis.Options{
			Addr:     url,
			Password: password,
			DB:       0,
		}, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	return opts, nil
}

func NewServiceWithClient(client *redis.Client) *Service {
	return &Service{
		client: client,
	}
}

// Set stores a value in Redis with an optional expiration
func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := s.client.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Dur("expiration", expiration).
			Msg("Redis SET operation failed")
		return err
	}
	return nil
}

// Get retrieves a value from Redis
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis GET operation failed")
		return "", err
	}
	return val, nil
}

// Delete removes a key from Redis
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
