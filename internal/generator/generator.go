package generator

import (
	"Bodi/internal/core/domain"
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Generator synthesises the demo property catalog.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a Generator seeded from cfg.Seed, or from the clock when the seed is 0.
func New(cfg Config) *Generator {
	cfg = withDefaults(cfg)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return NewWithRand(cfg, rand.New(rand.NewSource(cfg.Seed)))
}

// NewWithRand uses the supplied random source as is.
func NewWithRand(cfg Config, r *rand.Rand) *Generator {
	return &Generator{cfg: withDefaults(cfg), rand: r}
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Total <= 0 {
		cfg.Total = def.Total
	}
	if cfg.MinPerCity <= 0 {
		cfg.MinPerCity = def.MinPerCity
	}
	if cfg.MaxPerCity < cfg.MinPerCity {
		cfg.MaxPerCity = cfg.MinPerCity
	}
	if cfg.VerifiedChance <= 0 || cfg.VerifiedChance > 1 {
		cfg.VerifiedChance = def.VerifiedChance
	}
	if len(cfg.OwnerIDs) == 0 {
		cfg.OwnerIDs = def.OwnerIDs
	}
	return cfg
}

// Generate produces exactly cfg.Total listings. Cities are visited in a fixed
// order, each contributing a random count in [MinPerCity, MaxPerCity]; if one
// pass over the cities falls short the walk starts again from the first city.
// The id sequence is never reset, so ids are unique.
func (g *Generator) Generate(ctx context.Context) ([]domain.Property, error) {
	out := make([]domain.Property, 0, g.cfg.Total)
	seq := 1

	for len(out) < g.cfg.Total {
		for _, city := range cities {
			perCity := g.cfg.MinPerCity + g.rand.Intn(g.cfg.MaxPerCity-g.cfg.MinPerCity+1)
			for i := 0; i < perCity && len(out) < g.cfg.Total; i++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				out = append(out, g.property(city, seq))
				seq++
			}
			if len(out) >= g.cfg.Total {
				break
			}
		}
	}
	return out, nil
}

func (g *Generator) property(city cityPool, seq int) domain.Property {
	code := CityCode(city.name)
	propType := domain.PropertyTypes[g.rand.Intn(len(domain.PropertyTypes))]
	neighborhood := city.neighborhoods[g.rand.Intn(len(city.neighborhoods))]

	base := g.basePrice(propType)
	price := int(float64(base) * PriceMultiplier(city.name, neighborhood))

	numAmenities := 3 + g.rand.Intn(4)
	amenities := make([]string, 0, numAmenities)
	for _, idx := range g.rand.Perm(len(amenitiesPool))[:numAmenities] {
		amenities = append(amenities, amenitiesPool[idx])
	}

	verified := g.rand.Float64() < g.cfg.VerifiedChance
	var safety float64
	if verified {
		safety = g.uniform(7.0, 10.0)
	} else {
		safety = g.uniform(6.0, 8.5)
	}
	safety = math.Round(safety*10) / 10

	options := titles[propType]
	title := options[g.rand.Intn(len(options))]
	bedrooms := ""
	if propType.HasBedrooms() {
		bedrooms = fmt.Sprintf("%d-Bedroom ", 1+g.rand.Intn(4))
	}

	description := fmt.Sprintf(descriptions[g.rand.Intn(len(descriptions))], propType, neighborhood)
	owner := g.cfg.OwnerIDs[g.rand.Intn(len(g.cfg.OwnerIDs))]
	nbID := NeighborhoodID(city.name, neighborhood)

	return domain.Property{
		ID:             fmt.Sprintf("%s-%03d", code, seq),
		Title:          fmt.Sprintf("%s%s in %s", bedrooms, title, neighborhood),
		Description:    description,
		Location:       fmt.Sprintf("%s, %s", neighborhood, city.name),
		PriceNGN:       float64(price),
		Type:           propType,
		Verified:       verified,
		SafetyScore:    safety,
		OwnerID:        owner,
		ImageURLs:      []string{imageURLs[g.rand.Intn(len(imageURLs))]},
		Amenities:      amenities,
		NeighborhoodID: &nbID,
	}
}

func (g *Generator) basePrice(t domain.PropertyType) int {
	r := basePrices[t]
	return r.min + g.rand.Intn(r.max-r.min+1)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rand.Float64()*(hi-lo)
}

// PriceMultiplier is 2.5 for the premium neighborhoods, else 1.5 for the
// premium cities, else 1. The neighborhood rule replaces the city rule.
func PriceMultiplier(city, neighborhood string) float64 {
	if premiumNeighborhoods[neighborhood] {
		return premiumNeighborhoodMultiplier
	}
	if premiumCities[city] {
		return premiumCityMultiplier
	}
	return 1.0
}

// CityCode is the upper-cased first three letters of the city.
func CityCode(city string) string {
	if len(city) > 3 {
		city = city[:3]
	}
	return strings.ToUpper(city)
}

// NeighborhoodID builds e.g. "LAG-VICTORIA-ISLAND".
func NeighborhoodID(city, neighborhood string) string {
	return CityCode(city) + "-" + strings.ToUpper(strings.ReplaceAll(neighborhood, " ", "-"))
}

// BasePriceRange exposes the policy range for a type.
func BasePriceRange(t domain.PropertyType) (lo, hi int) {
	r := basePrices[t]
	return r.min, r.max
}
