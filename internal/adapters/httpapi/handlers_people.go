package httpapi

import (
	"Bodi/internal/core/services"
	"fmt"
	"net/http"
	"time"
)

const (
	userNotFound  = "User not found"
	shareNotFound = "Location share not found"
)

type verifyRequest struct {
	Level string `json:"level"`
}

type verifyResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	NewTrustScore int    `json:"new_trust_score"`
}

type reviewCreatedResponse struct {
	Status   string `json:"status"`
	ReviewID string `json:"review_id"`
	Message  string `json:"message"`
}

type shareStartedResponse struct {
	Status    string `json:"status"`
	ShareID   string `json:"share_id"`
	Message   string `json:"message"`
	SafetyTip string `json:"safety_tip"`
}

type shareStoppedResponse struct {
	Status  string `json:"status"`
	ShareID string `json:"share_id"`
	Active  bool   `json:"active"`
	Message string `json:"message"`
}

type emergencyResponse struct {
	Status    string    `json:"status"`
	AlertID   string    `json:"alert_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type maintenanceCreatedResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.svc.Users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, userNotFound)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (a *API) handleVerifyUser(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	user, err := a.svc.Users.Verify(r.Context(), r.PathValue("id"), req.Level)
	if err != nil {
		fail(w, r, err, userNotFound)
		return
	}
	respondJSON(w, http.StatusOK, verifyResponse{
		Status:        "success",
		Message:       fmt.Sprintf("User verified to level: %s", user.VerificationLevel),
		NewTrustScore: user.TrustScore,
	})
}

func (a *API) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req services.ReviewCreate
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	review, err := a.svc.Reviews.Create(r.Context(), req)
	if err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, reviewCreatedResponse{Status: "success", ReviewID: review.ID, Message: "Review posted!"})
}

func (a *API) handlePropertyReviews(w http.ResponseWriter, r *http.Request) {
	summary, err := a.svc.Reviews.ForProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (a *API) handleStartShare(w http.ResponseWriter, r *http.Request) {
	var req services.LocationShareCreate
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	share, err := a.svc.Safety.StartShare(r.Context(), req)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, shareStartedResponse{
		Status:    "success",
		ShareID:   share.ID,
		Message:   "Location sharing active. Emergency contact notified.",
		SafetyTip: "Stay in well-lit areas. Trust your instincts.",
	})
}

func (a *API) handleStopShare(w http.ResponseWriter, r *http.Request) {
	share, err := a.svc.Safety.StopShare(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, shareNotFound)
		return
	}
	respondJSON(w, http.StatusOK, shareStoppedResponse{
		Status:  "success",
		ShareID: share.ID,
		Active:  share.Active,
		Message: "Location sharing stopped.",
	})
}

func (a *API) handleEmergency(w http.ResponseWriter, r *http.Request) {
	var req services.EmergencyTrigger
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	alert, err := a.svc.Safety.TriggerEmergency(r.Context(), req)
	if err != nil {
		fail(w, r, err, shareNotFound)
		return
	}
	respondJSON(w, http.StatusOK, emergencyResponse{
		Status:    "alert_sent",
		AlertID:   alert.ID,
		Message:   "Emergency alert triggered. Notifying authorities and emergency contact.",
		Timestamp: alert.TriggeredAt,
	})
}

func (a *API) handleServiceProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	providers, err := a.svc.Community.Providers(r.Context(), services.ProviderFilter{
		ServiceType: q.Get("service_type"),
		Area:        q.Get("area"),
	})
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, providers)
}

func (a *API) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req services.MaintenanceCreate
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	m, err := a.svc.Community.RequestMaintenance(r.Context(), req)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, maintenanceCreatedResponse{
		Status:    "success",
		RequestID: m.ID,
		Message:   "Maintenance request submitted. Landlord will be notified.",
	})
}
