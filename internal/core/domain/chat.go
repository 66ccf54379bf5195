package domain

// Chat roles accepted from clients.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Languages the assistant can answer in.
const (
	LanguageEnglish = "en"
	LanguagePidgin  = "pidgin"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is what the assistant returns. Error is set only on a degraded reply.
type ChatReply struct {
	Response string `json:"response"`
	Language string `json:"language,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WebResult is one hit from the web search collaborator.
type WebResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// SearchUnderstanding is the structured reading of a semantic query
// returned by the completion service.
type SearchUnderstanding struct {
	SearchLocations []string `json:"search_locations"`
	NearbyAreas     []string `json:"nearby_areas"`
	PricePreference string   `json:"price_preference"`
	PropertyType    string   `json:"property_type"`
	VerifiedContext string   `json:"verified_context"`
}

// WebResearch is the grounding material behind a semantic search.
type WebResearch struct {
	Sources []string `json:"sources"`
	Context string   `json:"context"`
}

// SemanticSearchResult is the full answer to a semantic search.
// AIUnderstanding carries the model's reply verbatim for display;
// Understanding is the validated reading the filter ran on.
type SemanticSearchResult struct {
	Query           string              `json:"query"`
	WebResearch     WebResearch         `json:"web_research"`
	AIUnderstanding string              `json:"ai_understanding"`
	Understanding   SearchUnderstanding `json:"understanding"`
	SearchLocations []string            `json:"search_locations"`
	PropertiesFound int                 `json:"properties_found"`
	Properties      []Property          `json:"properties"`
}
