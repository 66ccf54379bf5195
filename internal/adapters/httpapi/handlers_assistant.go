package httpapi

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/services"
	"Bodi/internal/geo"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// searchErrorResponse is returned with status 200: the search page renders
// it in place of results.
type searchErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type cityResponse struct {
	Name          string   `json:"name"`
	Neighborhoods []string `json:"neighborhoods"`
}

type neighborhoodResponse struct {
	City         string            `json:"city"`
	Neighborhood string            `json:"neighborhood"`
	Found        bool              `json:"found"`
	Info         *geo.Neighborhood `json:"info,omitempty"`
	Nearby       []string          `json:"nearby"`
}

// handleChat always answers 200; degraded replies carry an error field.
func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var req services.ChatRequest
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, a.svc.Assistant.Chat(r.Context(), req))
}

func (a *API) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := a.svc.Assistant.SemanticSearch(r.Context(), query)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, result)
	case errors.Is(err, services.ErrWebSearchNotConfigured):
		respondJSON(w, http.StatusOK, searchErrorResponse{Error: "Tavily API key not configured"})
	case errors.Is(err, services.ErrCompletionNotConfigured):
		respondJSON(w, http.StatusOK, searchErrorResponse{Error: "AI service unavailable"})
	case errors.Is(err, domain.ErrValidation):
		fail(w, r, err, "")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("query", query).Msg("Semantic search failed")
		respondJSON(w, http.StatusOK, searchErrorResponse{Error: err.Error(), Details: "Check server logs"})
	}
}

func (a *API) handleListCities(w http.ResponseWriter, r *http.Request) {
	cities := a.svc.Places.Cities()
	out := make([]cityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, cityResponse{Name: c, Neighborhoods: a.svc.Places.Neighborhoods(c)})
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleLocationContext(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	respondJSON(w, http.StatusOK, a.svc.Places.ExtractContext(query))
}

// handleNeighborhood reports unknown places with found=false rather than 404.
func (a *API) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	city, name := r.PathValue("city"), r.PathValue("neighborhood")
	resp := neighborhoodResponse{
		City:         city,
		Neighborhood: name,
		Nearby:       a.svc.Places.NearbyNeighborhoods(name, city),
	}
	if info, ok := a.svc.Places.NeighborhoodInfo(name, city); ok {
		resp.Found = true
		resp.Info = &info
	}
	respondJSON(w, http.StatusOK, resp)
}
