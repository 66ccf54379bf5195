package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/geo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	noKeyReply   = "Abeg, my brain (API key) no dey available now. Configure am make I fit think properly!"
	networkReply = "Network issue. Please try again."

	maxSemanticResults = 10
	budgetCeilingNGN   = 1_000_000
	luxuryFloorNGN     = 1_500_000
)

var (
	ErrWebSearchNotConfigured  = fmt.Errorf("web search: %w", domain.ErrUnavailable)
	ErrCompletionNotConfigured = fmt.Errorf("completion: %w", domain.ErrUnavailable)
)

// ChatRequest is a conversation so far plus the reply language.
type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
	Language string               `json:"language"`
}

// AssistantService fronts the language model and web search. Either
// collaborator may be nil when its credential is not configured.
type AssistantService struct {
	log        zerolog.Logger
	store      ports.Store
	completion ports.CompletionPort
	search     ports.WebSearchPort
	kb         *geo.KnowledgeBase
}

func NewAssistantService(
	store ports.Store,
	completion ports.CompletionPort,
	search ports.WebSearchPort,
	kb *geo.KnowledgeBase,
	baseLogger *zerolog.Logger,
) *AssistantService {
	return &AssistantService{
		log:        baseLogger.With().Str("component", "assistant_service").Logger(),
		store:      store,
		completion: completion,
		search:     search,
		kb:         kb,
	}
}

// SystemPrompt renders the standing instructions over the current catalog.
func (s *AssistantService) SystemPrompt(ctx context.Context, language string) (string, error) {
	catalog, err := s.store.Properties().List(ctx)
	if err != nil {
		return "", err
	}
	return BuildSystemPrompt(catalog, language), nil
}

// Chat never fails: a missing credential or a provider error becomes a
// canned reply.
func (s *AssistantService) Chat(ctx context.Context, req ChatRequest) domain.ChatReply {
	language := req.Language
	if language == "" {
		language = domain.LanguageEnglish
	}
	if s.completion == nil {
		return domain.ChatReply{Response: noKeyReply, Language: language}
	}

	prompt, err := s.SystemPrompt(ctx, language)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to build system prompt")
		return domain.ChatReply{Response: networkReply, Error: err.Error()}
	}
	messages := make([]domain.ChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: prompt})
	messages = append(messages, req.Messages...)

	text, err := s.completion.Complete(ctx, ports.CompletionRequest{
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   600,
		TopP:        1,
	})
	if err != nil {
		s.log.Error().Err(err).Int("turns", len(req.Messages)).Msg("Chat completion failed")
		return domain.ChatReply{Response: networkReply, Error: err.Error()}
	}
	return domain.ChatReply{Response: text, Language: language}
}

// SemanticSearch researches the query on the web, asks the model for a
// structured reading of it and filters the catalog by that reading.
func (s *AssistantService) SemanticSearch(ctx context.Context, query string) (domain.SemanticSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SemanticSearchResult{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if s.search == nil {
		return domain.SemanticSearchResult{}, ErrWebSearchNotConfigured
	}
	if s.completion == nil {
		return domain.SemanticSearchResult{}, ErrCompletionNotConfigured
	}

	results, err := s.search.Search(ctx, ports.WebSearchRequest{
		Query:      fmt.Sprintf("Nigeria real estate %s location information neighborhoods", query),
		Depth:      "basic",
		MaxResults: 3,
	})
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Web search failed")
		return domain.SemanticSearchResult{}, fmt.Errorf("%w: web search: %v", domain.ErrExternalService, err)
	}
	research := domain.WebResearch{Sources: make([]string, 0, len(results)), Context: webContext(results)}
	for _, r := range results {
		research.Sources = append(research.Sources, r.URL)
	}

	hints := ""
	if s.kb != nil {
		hints = placeHints(s.kb.ExtractContext(query))
	}
	raw, err := s.completion.Complete(ctx, ports.CompletionRequest{
		Messages:    []domain.ChatMessage{{Role: domain.RoleUser, Content: buildUnderstandingPrompt(query, research.Context, hints)}},
		Temperature: 0.3,
		MaxTokens:   500,
		JSONObject:  true,
	})
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Understanding completion failed")
		return domain.SemanticSearchResult{}, fmt.Errorf("%w: completion: %v", domain.ErrExternalService, err)
	}
	understanding, err := ParseUnderstanding(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("Model returned an unusable understanding")
		return domain.SemanticSearchResult{}, err
	}

	catalog, err := s.store.Properties().List(ctx)
	if err != nil {
		return domain.SemanticSearchResult{}, err
	}
	locations := understanding.Locations()
	matches := FilterByUnderstanding(catalog, locations, PriceBandOf(understanding.PricePreference))

	s.log.Info().
		Str("query", query).
		Strs("locations", locations).
		Int("found", len(matches)).
		Msg("Semantic search completed")
	return domain.SemanticSearchResult{
		Query:           query,
		WebResearch:     research,
		AIUnderstanding: raw,
		Understanding:   understanding.SearchUnderstanding,
		SearchLocations: dedupe(locations),
		PropertiesFound: len(matches),
		Properties:      matches,
	}, nil
}

// Understanding wraps the model's structured reading of a query.
type Understanding struct {
	domain.SearchUnderstanding
}

// Locations is the inclusion filter: the search locations followed by the
// nearby areas, blanks dropped, and nearby entries mentioning "none" dropped.
func (u Understanding) Locations() []string {
	out := []string{}
	for _, l := range u.SearchLocations {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	for _, l := range u.NearbyAreas {
		l = strings.TrimSpace(l)
		if l == "" || strings.Contains(strings.ToLower(l), "none") {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ParseUnderstanding decodes exactly one JSON object with the agreed keys.
// Unknown keys, a missing search_locations and trailing data are rejected.
func ParseUnderstanding(raw string) (Understanding, error) {
	var wire struct {
		SearchLocations *[]string `json:"search_locations"`
		NearbyAreas     []string  `json:"nearby_areas"`
		PricePreference string    `json:"price_preference"`
		PropertyType    string    `json:"property_type"`
		VerifiedContext string    `json:"verified_context"`
	}
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return Understanding{}, fmt.Errorf("%w: understanding: %v", domain.ErrExternalService, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Understanding{}, fmt.Errorf("%w: understanding: trailing data after object", domain.ErrExternalService)
	}
	if wire.SearchLocations == nil {
		return Understanding{}, fmt.Errorf("%w: understanding: search_locations missing", domain.ErrExternalService)
	}
	if wire.NearbyAreas == nil {
		wire.NearbyAreas = []string{}
	}
	return Understanding{domain.SearchUnderstanding{
		SearchLocations: *wire.SearchLocations,
		NearbyAreas:     wire.NearbyAreas,
		PricePreference: wire.PricePreference,
		PropertyType:    wire.PropertyType,
		VerifiedContext: wire.VerifiedContext,
	}}, nil
}

// PriceBand is the coarse price filter read from a price preference.
type PriceBand int

const (
	PriceAny PriceBand = iota
	PriceBudget
	PriceLuxury
)

func PriceBandOf(preference string) PriceBand {
	p := strings.ToLower(preference)
	switch {
	case strings.Contains(p, "budget"), strings.Contains(p, "affordable"):
		return PriceBudget
	case strings.Contains(p, "luxury"), strings.Contains(p, "upscale"):
		return PriceLuxury
	}
	return PriceAny
}

func (b PriceBand) match(price float64) bool {
	switch b {
	case PriceBudget:
		return price < budgetCeilingNGN
	case PriceLuxury:
		return price > luxuryFloorNGN
	}
	return true
}

// FilterByUnderstanding keeps listings whose location contains any of
// locations (all listings when locations is empty), applies the price band
// and caps the result. Catalog order is preserved.
func FilterByUnderstanding(catalog []domain.Property, locations []string, band PriceBand) []domain.Property {
	out := []domain.Property{}
	for _, p := range catalog {
		if len(out) == maxSemanticResults {
			break
		}
		if !matchesAny(p.Location, locations) || !band.match(p.PriceNGN) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesAny(location string, candidates []string) bool {
	if len(candidates) == 0 {
		return true
	}
	for _, c := range candidates {
		if containsFold(location, c) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
