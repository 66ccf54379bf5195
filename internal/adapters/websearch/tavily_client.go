package websearch

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.tavily.com"

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type tavilyClient struct {
	log     zerolog.Logger
	http    *http.Client
	baseURL string
	apiKey  string
}

var _ ports.WebSearchPort = (*tavilyClient)(nil)

type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// NewTavilyClient returns domain.ErrUnavailable when no API key is configured.
func NewTavilyClient(cfg Config, baseLogger *zerolog.Logger) (ports.WebSearchPort, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("web search api key: %w", domain.ErrUnavailable)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &tavilyClient{
		log:     baseLogger.With().Str("component", "tavily_client").Logger(),
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

func (c *tavilyClient) Search(ctx context.Context, req ports.WebSearchRequest) ([]domain.WebResult, error) {
	body, err := json.Marshal(searchRequest{Query: req.Query, SearchDepth: req.Depth, MaxResults: req.MaxResults})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error().Err(err).Msg("Tavily request failed")
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(snippet)).Msg("Tavily returned an error")
		return nil, fmt.Errorf("tavily search: status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("tavily search: decode: %w", err)
	}

	out := make([]domain.WebResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, domain.WebResult{Title: r.Title, URL: r.URL, Content: r.Content, Score: r.Score})
	}
	c.log.Debug().Str("query", req.Query).Int("results", len(out)).Msg("Tavily search finished")
	return out, nil
}
