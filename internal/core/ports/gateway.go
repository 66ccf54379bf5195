package ports

import (
	"Bodi/internal/core/domain"
	"context"
)

// CompletionRequest is one call to the chat-completion collaborator.
type CompletionRequest struct {
	Messages    []domain.ChatMessage
	Temperature float32
	MaxTokens   int
	TopP        float32
	// JSONObject asks the model to answer with a single JSON object.
	JSONObject bool
}

// CompletionPort talks to the language model.
type CompletionPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// WebSearchRequest is one call to the web search collaborator.
type WebSearchRequest struct {
	Query      string
	Depth      string
	MaxResults int
}

// WebSearchPort grounds a semantic search with live web results.
type WebSearchPort interface {
	Search(ctx context.Context, req WebSearchRequest) ([]domain.WebResult, error)
}
