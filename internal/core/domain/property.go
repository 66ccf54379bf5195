package domain

import (
	"fmt"
	"slices"
	"strings"
)

// PropertyType is the closed set of listing kinds.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyDuplex    PropertyType = "duplex"
	PropertyStudio    PropertyType = "studio"
	PropertyBungalow  PropertyType = "bungalow"
	PropertyFlat      PropertyType = "flat"
)

// PropertyTypes lists every type in declaration order.
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyDuplex,
	PropertyStudio,
	PropertyBungalow,
	PropertyFlat,
}

// ParsePropertyType validates a type tag.
func ParsePropertyType(s string) (PropertyType, error) {
	for _, t := range PropertyTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown property type %q", ErrValidation, s)
}

// HasBedrooms reports whether titles for this type carry a bedroom count.
func (t PropertyType) HasBedrooms() bool {
	switch t {
	case PropertyApartment, PropertyDuplex, PropertyBungalow:
		return true
	}
	return false
}

// Property is a rental listing.
type Property struct {
	ID             string       `json:"id" yaml:"id"`
	Title          string       `json:"title" yaml:"title"`
	Description    string       `json:"description" yaml:"description"`
	Location       string       `json:"location" yaml:"location"`
	PriceNGN       float64      `json:"price_ngn" yaml:"price_ngn"`
	Type           PropertyType `json:"type" yaml:"type"`
	Verified       bool         `json:"verified" yaml:"verified"`
	SafetyScore    float64      `json:"safety_score" yaml:"safety_score"`
	OwnerID        string       `json:"owner_id" yaml:"owner_id"`
	ImageURLs      []string     `json:"image_urls" yaml:"image_urls"`
	Amenities      []string     `json:"amenities" yaml:"amenities"`
	NeighborhoodID *string      `json:"neighborhood_id,omitempty" yaml:"neighborhood_id,omitempty"`
}

// Clone returns a copy that shares no slices with p.
func (p Property) Clone() Property {
	p.ImageURLs = slices.Clone(p.ImageURLs)
	p.Amenities = slices.Clone(p.Amenities)
	if p.NeighborhoodID != nil {
		id := *p.NeighborhoodID
		p.NeighborhoodID = &id
	}
	return p
}

// Validate checks the fields a landlord must supply on create.
func (p Property) Validate() error {
	var problems []string
	if strings.TrimSpace(p.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		problems = append(problems, "owner_id is required")
	}
	if p.PriceNGN < 0 {
		problems = append(problems, "price_ngn must not be negative")
	}
	if _, err := ParsePropertyType(string(p.Type)); err != nil {
		problems = append(problems, fmt.Sprintf("type %q is not one of apartment, duplex, studio, bungalow, flat", p.Type))
	}
	if p.SafetyScore < 0 || p.SafetyScore > 10 {
		problems = append(problems, "safety_score must be within [0,10]")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// PropertyPatch lists the mutable listing fields. Nil means unchanged.
// id and owner_id are not patchable.
type PropertyPatch struct {
	Title          *string       `json:"title,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Location       *string       `json:"location,omitempty"`
	PriceNGN       *float64      `json:"price_ngn,omitempty"`
	Type           *PropertyType `json:"type,omitempty"`
	Verified       *bool         `json:"verified,omitempty"`
	SafetyScore    *float64      `json:"safety_score,omitempty"`
	ImageURLs      *[]string     `json:"image_urls,omitempty"`
	Amenities      *[]string     `json:"amenities,omitempty"`
	NeighborhoodID *string       `json:"neighborhood_id,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (pp PropertyPatch) Empty() bool {
	return pp == PropertyPatch{}
}

// Apply returns p with the patch applied, validating the result.
func (pp PropertyPatch) Apply(p Property) (Property, error) {
	out := p.Clone()
	if pp.Title != nil {
		out.Title = *pp.Title
	}
	if pp.Description != nil {
		out.Description = *pp.Description
	}
	if pp.Location != nil {
		out.Location = *pp.Location
	}
	if pp.PriceNGN != nil {
		out.PriceNGN = *pp.PriceNGN
	}
	if pp.Type != nil {
		out.Type = *pp.Type
	}
	if pp.Verified != nil {
		out.Verified = *pp.Verified
	}
	if pp.SafetyScore != nil {
		out.SafetyScore = *pp.SafetyScore
	}
	if pp.ImageURLs != nil {
		out.ImageURLs = slices.Clone(*pp.ImageURLs)
	}
	if pp.Amenities != nil {
		out.Amenities = slices.Clone(*pp.Amenities)
	}
	if pp.NeighborhoodID != nil {
		id := *pp.NeighborhoodID
		out.NeighborhoodID = &id
	}
	if err := out.Validate(); err != nil {
		return p, err
	}
	return out, nil
}

// PropertyDetail is a listing with its reviews attached.
type PropertyDetail struct {
	Property
	Reviews   []Review `json:"reviews"`
	AvgRating float64  `json:"avg_rating"`
}
