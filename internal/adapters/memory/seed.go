package memory

import (
	"Bodi/internal/core/domain"
	"time"
)

// SeedData is the initial content of a store.
type SeedData struct {
	Users            []domain.User
	Properties       []domain.Property
	ServiceProviders []domain.ServiceProvider
	Reviews          []domain.Review
}

// DefaultSeed returns the fixed demo accounts, providers and the first review
// around a generated catalog. The review targets LAG-001, which every
// generated catalog starts with.
func DefaultSeed(properties []domain.Property, now time.Time) SeedData {
	return SeedData{
		Users: []domain.User{
			{
				ID:                "USR-001",
				Name:              "Chinedu Okafor",
				Email:             "chinedu@example.com",
				Phone:             "+234-808-123-4567",
				VerificationLevel: domain.VerificationNINBVN,
				TrustScore:        850,
				CreatedAt:         now,
			},
			{
				ID:                "USR-002",
				Name:              "Aisha Ibrahim",
				Email:             "aisha@example.com",
				Phone:             "+234-809-987-6543",
				VerificationLevel: domain.VerificationVideo,
				TrustScore:        920,
				CreatedAt:         now,
			},
		},
		Properties: properties,
		ServiceProviders: []domain.ServiceProvider{
			{
				ID:          "SP-001",
				Name:        "Emeka the Plumber",
				ServiceType: "plumber",
				Phone:       "+234-803-111-2222",
				Verified:    true,
				Rating:      4.7,
				ServiceArea: []string{"Yaba", "Surulere", "Ikeja"},
			},
			{
				ID:          "SP-002",
				Name:        "FastMove Logistics",
				ServiceType: "mover",
				Phone:       "+234-809-333-4444",
				Verified:    true,
				Rating:      4.5,
				ServiceArea: []string{"Lagos", "Ibadan"},
			},
		},
		Reviews: []domain.Review{
			{
				ID:         "REV-001",
				PropertyID: "LAG-001",
				ReviewerID: "USR-002",
				Rating:     5,
				Comment:    "Amazing place! Landlord is very responsive. No issues with power.",
				CreatedAt:  now,
			},
		},
	}
}
