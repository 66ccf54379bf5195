package domain

import "time"

// ServiceProvider is a vetted tradesperson or mover.
type ServiceProvider struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ServiceType string   `json:"service_type"`
	Phone       string   `json:"phone"`
	Verified    bool     `json:"verified"`
	Rating      float64  `json:"rating"`
	ServiceArea []string `json:"service_area"`
}

// Maintenance request statuses. The field is an open string.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
)

// MaintenanceRequest is a tenant's repair ticket.
type MaintenanceRequest struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	TenantID    string    `json:"tenant_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
