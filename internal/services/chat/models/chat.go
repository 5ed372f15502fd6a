package models

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the body returned by POST /api/chat
type ChatResponse struct {
	Answer  string `json:"answer"`
	TraceID string `json:"trace_id"`
}
