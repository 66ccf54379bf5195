// Package geo is the static Nigerian location knowledge base used to read
// place names, landmarks and preferences out of free-text searches.
package geo

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed geography.yaml
var geographyYAML []byte

// Neighborhood is the detail record of one neighborhood.
type Neighborhood struct {
	Name      string   `yaml:"name" json:"-"`
	Zone      string   `yaml:"zone" json:"zone"`
	Landmarks []string `yaml:"landmarks" json:"landmarks"`
	Nearby    []string `yaml:"nearby" json:"nearby"`
	KnownFor  string   `yaml:"known_for" json:"known_for"`
}

// City groups neighborhoods.
type City struct {
	Name          string         `yaml:"name"`
	Neighborhoods []Neighborhood `yaml:"neighborhoods"`
}

type alias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

type preference struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

type document struct {
	Cities            []City       `yaml:"cities"`
	Aliases           []alias      `yaml:"aliases"`
	ProximityKeywords []string     `yaml:"proximity_keywords"`
	Preferences       []preference `yaml:"preferences"`
}

// KnowledgeBase is read-only after construction and safe for concurrent use.
type KnowledgeBase struct {
	doc document
}

// Load parses the embedded geography.
func Load() (*KnowledgeBase, error) {
	return Parse(geographyYAML)
}

// MustLoad is Load for package-level wiring where the embedded data is known good.
func MustLoad() *KnowledgeBase {
	kb, err := Load()
	if err != nil {
		panic(err)
	}
	return kb
}

// Parse builds a knowledge base from YAML.
func Parse(data []byte) (*KnowledgeBase, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing geography: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("parsing geography: no cities defined")
	}
	return &KnowledgeBase{doc: doc}, nil
}

// Cities returns the city names in declaration order.
func (kb *KnowledgeBase) Cities() []string {
	out := make([]string, 0, len(kb.doc.Cities))
	for _, c := range kb.doc.Cities {
		out = append(out, c.Name)
	}
	return out
}

// Neighborhoods returns the neighborhood names of a city, or nil for an unknown city.
func (kb *KnowledgeBase) Neighborhoods(city string) []string {
	c, ok := kb.city(city)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(c.Neighborhoods))
	for _, n := range c.Neighborhoods {
		out = append(out, n.Name)
	}
	return out
}

// NeighborhoodInfo returns the detail record. Unknown keys are not an error;
// found is false and the record is empty.
func (kb *KnowledgeBase) NeighborhoodInfo(neighborhood, city string) (Neighborhood, bool) {
	c, ok := kb.city(city)
	if !ok {
		return Neighborhood{}, false
	}
	for _, n := range c.Neighborhoods {
		if n.Name == neighborhood {
			return n, true
		}
	}
	return Neighborhood{}, false
}

// NearbyNeighborhoods returns the static nearby list, empty for unknown keys.
func (kb *KnowledgeBase) NearbyNeighborhoods(neighborhood, city string) []string {
	n, ok := kb.NeighborhoodInfo(neighborhood, city)
	if !ok {
		return []string{}
	}
	return append([]string{}, n.Nearby...)
}

func (kb *KnowledgeBase) city(name string) (City, bool) {
	for _, c := range kb.doc.Cities {
		if c.Name == name {
			return c, true
		}
	}
	return City{}, false
}

// NeighborhoodMatch is a neighborhood found in a query.
type NeighborhoodMatch struct {
	Name    string       `json:"name"`
	City    string       `json:"city"`
	Details Neighborhood `json:"details"`
}

// Context is everything ExtractContext could read out of a query.
type Context struct {
	Cities         []string            `json:"cities"`
	Neighborhoods  []NeighborhoodMatch `json:"neighborhoods"`
	Landmarks      []string            `json:"landmarks"`
	ProximityHints []string            `json:"proximity_hints"`
	Preferences    []string            `json:"preferences"`
}

// ExtractContext reads cities, neighborhoods, proximity phrases and
// preference categories out of a free-text query.
//
// Matching is case-insensitive substring matching. Aliases are rewritten
// to their canonical names first, in table order, and every later pass
// runs against the rewritten text. Short aliases match inside longer
// words ("vi" in "vicinity"), which is how the table has always behaved.
func (kb *KnowledgeBase) ExtractContext(query string) Context {
	text := strings.ToLower(query)
	for _, a := range kb.doc.Aliases {
		from := strings.ToLower(a.Alias)
		if strings.Contains(text, from) {
			text = strings.ReplaceAll(text, from, strings.ToLower(a.Canonical))
		}
	}

	ctx := Context{
		Cities:         []string{},
		Neighborhoods:  []NeighborhoodMatch{},
		Landmarks:      []string{},
		ProximityHints: []string{},
		Preferences:    []string{},
	}

	for _, c := range kb.doc.Cities {
		if strings.Contains(text, strings.ToLower(c.Name)) {
			ctx.Cities = append(ctx.Cities, c.Name)
		}
	}

	seenLandmark := make(map[string]bool)
	for _, c := range kb.doc.Cities {
		for _, n := range c.Neighborhoods {
			if !strings.Contains(text, strings.ToLower(n.Name)) {
				continue
			}
			ctx.Neighborhoods = append(ctx.Neighborhoods, NeighborhoodMatch{Name: n.Name, City: c.Name, Details: n})
			for _, l := range n.Landmarks {
				if !seenLandmark[l] {
					seenLandmark[l] = true
					ctx.Landmarks = append(ctx.Landmarks, l)
				}
			}
		}
	}

	for _, kw := range kb.doc.ProximityKeywords {
		if strings.Contains(text, kw) {
			ctx.ProximityHints = append(ctx.ProximityHints, kw)
		}
	}

	seenPref := make(map[string]bool)
	for _, p := range kb.doc.Preferences {
		if strings.Contains(text, p.Keyword) && !seenPref[p.Category] {
			seenPref[p.Category] = true
			ctx.Preferences = append(ctx.Preferences, p.Category)
		}
	}

	return ctx
}

// NeighborhoodNames flattens the matches to their names.
func (c Context) NeighborhoodNames() []string {
	out := make([]string, 0, len(c.Neighborhoods))
	for _, n := range c.Neighborhoods {
		out = append(out, n.Name)
	}
	return out
}
