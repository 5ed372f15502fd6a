package chat

import (
	"context"
)

// Service defines the interface for chat operations
type Service interface {
	// Answer produces the reply for a single user message
	Answer(ctx context.Context, traceID, message string) (string, error)
}
