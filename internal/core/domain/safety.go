package domain

import "time"

// LocationShare is a live location broadcast during a viewing.
type LocationShare struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PropertyID       string    `json:"property_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	EmergencyContact string    `json:"emergency_contact"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// EmergencyAlert is raised by a user during an active share.
// It is not stored; it travels on the event bus.
type EmergencyAlert struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	LocationShareID  string    `json:"location_share_id"`
	PropertyID       string    `json:"property_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	EmergencyContact string    `json:"emergency_contact"`
	Message          string    `json:"message"`
	TriggeredAt      time.Time `json:"triggered_at"`
}
