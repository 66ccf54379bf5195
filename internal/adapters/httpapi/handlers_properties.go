package httpapi

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"fmt"
	"net/http"
	"strconv"
)

const propertyNotFound = "Property not found"

type propertyCreatedResponse struct {
	PropertyID string `json:"property_id"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

type propertyUpdatedResponse struct {
	Message  string          `json:"message"`
	Property domain.Property `json:"property"`
}

type imageUploadResponse struct {
	PropertyID string `json:"property_id"`
	ports.PresignedUpload
}

func (a *API) handleListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := propertyFilterFrom(r)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	props, err := a.svc.Properties.List(r.Context(), filter)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, props)
}

func propertyFilterFrom(r *http.Request) (services.PropertyFilter, error) {
	q := r.URL.Query()
	filter := services.PropertyFilter{Location: q.Get("location")}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: max_price must be a number", domain.ErrValidation)
		}
		filter.MaxPrice = &v
	}
	if raw := q.Get("verified_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: verified_only must be a boolean", domain.ErrValidation)
		}
		filter.VerifiedOnly = v
	}
	return filter, nil
}

func (a *API) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	detail, err := a.svc.Properties.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (a *API) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p domain.Property
	if err := decodeJSON(r, &p, false); err != nil {
		fail(w, r, err, "")
		return
	}
	created, err := a.svc.Properties.Create(r.Context(), p)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, propertyCreatedResponse{
		PropertyID: created.ID,
		Message:    "Property listed successfully!",
		Status:     "pending_verification",
	})
}

func (a *API) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	var patch domain.PropertyPatch
	if err := decodeJSON(r, &patch, true); err != nil {
		fail(w, r, err, "")
		return
	}
	updated, err := a.svc.Properties.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, propertyUpdatedResponse{Message: "Property updated successfully", Property: updated})
}

func (a *API) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Properties.Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Property listing removed"})
}

func (a *API) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	var req services.ImageUploadRequest
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	id := r.PathValue("id")
	upload, err := a.svc.Landlord.RequestImageUpload(r.Context(), id, req)
	if err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, imageUploadResponse{PropertyID: id, PresignedUpload: upload})
}

func (a *API) handleLandlordProperties(w http.ResponseWriter, r *http.Request) {
	props, err := a.svc.Landlord.Properties(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, props)
}

func (a *API) handleLandlordEscrows(w http.ResponseWriter, r *http.Request) {
	txs, err := a.svc.Landlord.Escrows(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

func (a *API) handleLandlordMaintenance(w http.ResponseWriter, r *http.Request) {
	reqs, err := a.svc.Landlord.Maintenance(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, reqs)
}

func (a *API) handleLandlordAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.Landlord.Analytics(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
