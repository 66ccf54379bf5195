package httpapi

import (
	"Bodi/internal/core/services"
	"Bodi/internal/geo"
	"net/http"

	"github.com/rs/zerolog"
)

// Services are the core use cases behind the handlers. Audit may be nil
// when no ledger is configured.
type Services struct {
	Properties *services.PropertyService
	Users      *services.UserService
	Escrow     *services.EscrowService
	Reviews    *services.ReviewService
	Safety     *services.SafetyService
	Community  *services.CommunityService
	Landlord   *services.LandlordService
	Assistant  *services.AssistantService
	Audit      *services.AuditRecorder
	Places     *geo.KnowledgeBase
}

// API holds the route handlers.
type API struct {
	log zerolog.Logger
	svc Services
}

func NewAPI(baseLogger *zerolog.Logger, svc Services) *API {
	return &API{
		log: baseLogger.With().Str("component", "http_api").Logger(),
		svc: svc,
	}
}

func (a *API) register(handle func(string, http.HandlerFunc)) {
	handle("GET /api/properties", a.handleListProperties)
	handle("GET /api/properties/{id}", a.handleGetProperty)

	handle("POST /api/chat", a.handleChat)
	handle("POST /api/search/semantic", a.handleSemanticSearch)

	handle("GET /api/locations", a.handleListCities)
	handle("GET /api/locations/context", a.handleLocationContext)
	handle("GET /api/locations/{city}/{neighborhood}", a.handleNeighborhood)

	handle("GET /api/users/{id}", a.handleGetUser)
	handle("POST /api/users/{id}/verify", a.handleVerifyUser)

	handle("POST /api/escrow/initiate", a.handleInitiateEscrow)
	handle("GET /api/escrow/{id}", a.handleGetEscrow)
	handle("GET /api/escrow/{id}/history", a.handleEscrowHistory)
	handle("POST /api/escrow/{id}/release", a.handleReleaseEscrow)
	handle("POST /api/escrow/{id}/deposit", a.handleDepositEscrow)
	handle("POST /api/escrow/{id}/hold", a.handleHoldEscrow)
	handle("POST /api/escrow/{id}/dispute", a.handleDisputeEscrow)
	handle("POST /api/escrow/{id}/refund", a.handleRefundEscrow)

	handle("POST /api/reviews", a.handleCreateReview)
	handle("GET /api/reviews/property/{id}", a.handlePropertyReviews)

	handle("POST /api/safety/location-share", a.handleStartShare)
	handle("POST /api/safety/location-share/{id}/stop", a.handleStopShare)
	handle("POST /api/safety/emergency", a.handleEmergency)

	handle("GET /api/service-providers", a.handleServiceProviders)
	handle("POST /api/maintenance", a.handleMaintenance)

	handle("POST /api/landlord/properties", a.handleCreateProperty)
	handle("PUT /api/landlord/properties/{id}", a.handleUpdateProperty)
	handle("DELETE /api/landlord/properties/{id}", a.handleDeleteProperty)
	handle("POST /api/landlord/properties/{id}/images", a.handleImageUpload)
	handle("GET /api/landlord/{id}/properties", a.handleLandlordProperties)
	handle("GET /api/landlord/{id}/escrow-transactions", a.handleLandlordEscrows)
	handle("GET /api/landlord/{id}/maintenance-requests", a.handleLandlordMaintenance)
	handle("GET /api/landlord/{id}/analytics", a.handleLandlordAnalytics)
}
