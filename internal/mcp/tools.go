package mcp

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/services"
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type SearchPropertiesInput struct {
	Location     string   `json:"location,omitempty" jsonschema:"case-insensitive substring of the listing location"`
	MaxPrice     *float64 `json:"max_price,omitempty" jsonschema:"highest yearly rent in naira"`
	VerifiedOnly bool     `json:"verified_only,omitempty" jsonschema:"only return verified listings"`
}

type GetPropertyInput struct {
	ID string `json:"id" jsonschema:"listing id, e.g. LAG-001"`
}

type LocationContextInput struct {
	Query string `json:"query" jsonschema:"free-text search to read places and preferences from"`
}

type NeighborhoodInput struct {
	Neighborhood string `json:"neighborhood" jsonschema:"neighborhood name, e.g. Yaba"`
	City         string `json:"city" jsonschema:"city name, e.g. Lagos"`
}

type ListPlacesInput struct {
	City string `json:"city,omitempty" jsonschema:"list this city's neighborhoods instead of the cities"`
}

type PropertySummaryOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Type        string  `json:"type"`
	PriceNGN    float64 `json:"price_ngn"`
	Price       string  `json:"price"`
	Verified    bool    `json:"verified"`
	SafetyScore float64 `json:"safety_score"`
}

type SearchPropertiesOutput struct {
	Count      int                     `json:"count"`
	Properties []PropertySummaryOutput `json:"properties"`
}

type ReviewOutput struct {
	ReviewerID string `json:"reviewer_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type PropertyDetailOutput struct {
	Property    PropertySummaryOutput `json:"property"`
	Description string                `json:"description"`
	OwnerID     string                `json:"owner_id"`
	Amenities   []string              `json:"amenities"`
	ImageURLs   []string              `json:"image_urls"`
	AvgRating   float64               `json:"avg_rating"`
	Reviews     []ReviewOutput        `json:"reviews"`
}

type LocationContextOutput struct {
	Cities         []string `json:"cities"`
	Neighborhoods  []string `json:"neighborhoods"`
	Landmarks      []string `json:"landmarks"`
	ProximityHints []string `json:"proximity_hints"`
	Preferences    []string `json:"preferences"`
}

type NearbyOutput struct {
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	Nearby       []string `json:"nearby"`
}

type NeighborhoodInfoOutput struct {
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	Found        bool     `json:"found"`
	Zone         string   `json:"zone,omitempty"`
	KnownFor     string   `json:"known_for,omitempty"`
	Landmarks    []string `json:"landmarks"`
	Nearby       []string `json:"nearby"`
}

type ListPlacesOutput struct {
	City  string   `json:"city,omitempty"`
	Names []string `json:"names"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_properties",
		Description: "Search rental listings by location, budget and verification",
	}, s.handleSearchProperties)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_property",
		Description: "Retrieve one listing with its reviews",
	}, s.handleGetProperty)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "location_context",
		Description: "Extract cities, neighborhoods, landmarks and preferences from a query",
	}, s.handleLocationContext)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "nearby_neighborhoods",
		Description: "List the neighborhoods close to a neighborhood",
	}, s.handleNearby)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "neighborhood_info",
		Description: "Describe a neighborhood: zone, landmarks and what it is known for",
	}, s.handleNeighborhoodInfo)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_places",
		Description: "List the covered cities, or the neighborhoods of one city",
	}, s.handleListPlaces)
}

func (s *Server) handleSearchProperties(ctx context.Context, req *sdk.CallToolRequest, input SearchPropertiesInput) (*sdk.CallToolResult, SearchPropertiesOutput, error) {
	if input.MaxPrice != nil && *input.MaxPrice < 0 {
		return nil, SearchPropertiesOutput{}, fmt.Errorf("max_price must not be negative")
	}
	found, err := s.properties.List(ctx, services.PropertyFilter{
		Location:     input.Location,
		MaxPrice:     input.MaxPrice,
		VerifiedOnly: input.VerifiedOnly,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("search_properties failed")
		return nil, SearchPropertiesOutput{}, err
	}

	out := make([]PropertySummaryOutput, 0, len(found))
	for _, p := range found {
		out = append(out, summaryOutput(p))
	}
	return nil, SearchPropertiesOutput{Count: len(out), Properties: out}, nil
}

func (s *Server) handleGetProperty(ctx context.Context, req *sdk.CallToolRequest, input GetPropertyInput) (*sdk.CallToolResult, PropertyDetailOutput, error) {
	id := strings.ToUpper(strings.TrimSpace(input.ID))
	if id == "" {
		return nil, PropertyDetailOutput{}, fmt.Errorf("id is required")
	}
	detail, err := s.properties.Detail(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, PropertyDetailOutput{}, fmt.Errorf("property %s not found", id)
	}
	if err != nil {
		s.log.Error().Err(err).Str("property_id", id).Msg("get_property failed")
		return nil, PropertyDetailOutput{}, err
	}
	return nil, detailOutput(detail), nil
}

func (s *Server) handleLocationContext(ctx context.Context, req *sdk.CallToolRequest, input LocationContextInput) (*sdk.CallToolResult, LocationContextOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, LocationContextOutput{}, fmt.Errorf("query is required")
	}
	c := s.places.ExtractContext(input.Query)
	return nil, LocationContextOutput{
		Cities:         nonNil(c.Cities),
		Neighborhoods:  nonNil(c.NeighborhoodNames()),
		Landmarks:      nonNil(c.Landmarks),
		ProximityHints: nonNil(c.ProximityHints),
		Preferences:    nonNil(c.Preferences),
	}, nil
}

func (s *Server) handleNearby(ctx context.Context, req *sdk.CallToolRequest, input NeighborhoodInput) (*sdk.CallToolResult, NearbyOutput, error) {
	if input.Neighborhood == "" || input.City == "" {
		return nil, NearbyOutput{}, fmt.Errorf("neighborhood and city are required")
	}
	return nil, NearbyOutput{
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Nearby:       s.places.NearbyNeighborhoods(input.Neighborhood, input.City),
	}, nil
}

// handleNeighborhoodInfo reports unknown places with found=false rather
// than a tool error.
func (s *Server) handleNeighborhoodInfo(ctx context.Context, req *sdk.CallToolRequest, input NeighborhoodInput) (*sdk.CallToolResult, NeighborhoodInfoOutput, error) {
	if input.Neighborhood == "" || input.City == "" {
		return nil, NeighborhoodInfoOutput{}, fmt.Errorf("neighborhood and city are required")
	}
	out := NeighborhoodInfoOutput{
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Landmarks:    []string{},
		Nearby:       []string{},
	}
	info, ok := s.places.NeighborhoodInfo(input.Neighborhood, input.City)
	if !ok {
		return nil, out, nil
	}
	out.Found = true
	out.Zone = info.Zone
	out.KnownFor = info.KnownFor
	out.Landmarks = nonNil(info.Landmarks)
	out.Nearby = nonNil(info.Nearby)
	return nil, out, nil
}

func (s *Server) handleListPlaces(ctx context.Context, req *sdk.CallToolRequest, input ListPlacesInput) (*sdk.CallToolResult, ListPlacesOutput, error) {
	if input.City == "" {
		return nil, ListPlacesOutput{Names: s.places.Cities()}, nil
	}
	names := s.places.Neighborhoods(input.City)
	if len(names) == 0 {
		return nil, ListPlacesOutput{}, fmt.Errorf("unknown city %q, expected one of %s", input.City, strings.Join(s.places.Cities(), ", "))
	}
	return nil, ListPlacesOutput{City: input.City, Names: names}, nil
}

func summaryOutput(p domain.Property) PropertySummaryOutput {
	return PropertySummaryOutput{
		ID:          p.ID,
		Title:       p.Title,
		Location:    p.Location,
		Type:        string(p.Type),
		PriceNGN:    p.PriceNGN,
		Price:       domain.FormatNaira(p.PriceNGN),
		Verified:    p.Verified,
		SafetyScore: p.SafetyScore,
	}
}

func detailOutput(d domain.PropertyDetail) PropertyDetailOutput {
	reviews := make([]ReviewOutput, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, ReviewOutput{ReviewerID: r.ReviewerID, Rating: r.Rating, Comment: r.Comment})
	}
	return PropertyDetailOutput{
		Property:    summaryOutput(d.Property),
		Description: d.Property.Description,
		OwnerID:     d.Property.OwnerID,
		Amenities:   nonNil(d.Property.Amenities),
		ImageURLs:   nonNil(d.Property.ImageURLs),
		AvgRating:   d.AvgRating,
		Reviews:     reviews,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
