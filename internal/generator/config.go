package generator

// Config drives the synthetic catalog generator.
type Config struct {
	Total          int
	MinPerCity     int
	MaxPerCity     int
	VerifiedChance float64
	OwnerIDs       []string
	Seed           int64
}

// DefaultConfig returns the demo catalog settings: 100 listings, 15-20 per
// city, 70% verified, owned by the two seeded accounts.
func DefaultConfig() Config {
	return Config{
		Total:          100,
		MinPerCity:     15,
		MaxPerCity:     20,
		VerifiedChance: 0.7,
		OwnerIDs:       []string{"USR-001", "USR-002"},
		Seed:           42,
	}
}
