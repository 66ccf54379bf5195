package llm

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// Config selects the OpenAI-compatible endpoint. Groq is the default.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type groqClient struct {
	log     zerolog.Logger
	client  *openai.Client
	model   string
	timeout time.Duration
}

var _ ports.CompletionPort = (*groqClient)(nil)

// NewGroqClient returns domain.ErrUnavailable when no API key is configured,
// so callers can run the assistant in its no-credential mode.
func NewGroqClient(cfg Config, baseLogger *zerolog.Logger) (ports.CompletionPort, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion api key: %w", domain.ErrUnavailable)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &groqClient{
		log:     baseLogger.With().Str("component", "groq_client").Logger(),
		client:  openai.NewClientWithConfig(oc),
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

func (c *groqClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	creq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	}
	if req.JSONObject {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		c.log.Error().Err(err).Str("model", c.model).Msg("Chat completion request failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w: no choices returned", domain.ErrExternalService)
	}

	c.log.Debug().
		Str("model", c.model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("took", time.Since(start)).
		Msg("Chat completion finished")
	return resp.Choices[0].Message.Content, nil
}
