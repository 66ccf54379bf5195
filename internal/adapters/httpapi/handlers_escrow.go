package httpapi

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/services"
	"context"
	"fmt"
	"net/http"
)

const transactionNotFound = "Transaction not found"

type escrowInitiatedResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
	NextSteps     string `json:"next_steps"`
}

type escrowStepResponse struct {
	Status      string                    `json:"status"`
	Message     string                    `json:"message"`
	Transaction *domain.EscrowTransaction `json:"transaction,omitempty"`
}

type escrowHistoryResponse struct {
	TransactionID string                 `json:"transaction_id"`
	Entries       []services.AuditRecord `json:"entries"`
}

type disputeRequest struct {
	Reason string `json:"reason"`
}

func (a *API) handleInitiateEscrow(w http.ResponseWriter, r *http.Request) {
	var req services.EscrowInitiate
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	tx, err := a.svc.Escrow.Initiate(r.Context(), req)
	if err != nil {
		fail(w, r, err, propertyNotFound)
		return
	}
	respondJSON(w, http.StatusOK, escrowInitiatedResponse{
		Status:        "success",
		TransactionID: tx.ID,
		Message:       fmt.Sprintf("Escrow initiated: %s. Funds will be held securely.", domain.FormatNaira(tx.AmountNGN)),
		NextSteps:     "Complete payment to move status to 'DEPOSITED'",
	})
}

func (a *API) handleGetEscrow(w http.ResponseWriter, r *http.Request) {
	tx, err := a.svc.Escrow.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, transactionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (a *API) handleReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	if _, err := a.svc.Escrow.Release(r.Context(), r.PathValue("id")); err != nil {
		fail(w, r, err, transactionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, escrowStepResponse{Status: "success", Message: "Funds released to landlord"})
}

func (a *API) handleDepositEscrow(w http.ResponseWriter, r *http.Request) {
	a.escrowStep(w, r, a.svc.Escrow.Deposit, "Payment received. Funds deposited in escrow.")
}

func (a *API) handleHoldEscrow(w http.ResponseWriter, r *http.Request) {
	a.escrowStep(w, r, a.svc.Escrow.Hold, "Funds held until move-in is confirmed.")
}

func (a *API) handleRefundEscrow(w http.ResponseWriter, r *http.Request) {
	a.escrowStep(w, r, a.svc.Escrow.Refund, "Funds refunded to tenant.")
}

func (a *API) handleDisputeEscrow(w http.ResponseWriter, r *http.Request) {
	var req disputeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		fail(w, r, err, "")
		return
	}
	a.escrowStep(w, r, func(ctx context.Context, id string) (domain.EscrowTransaction, error) {
		return a.svc.Escrow.Dispute(ctx, id, req.Reason)
	}, "Dispute opened. Funds stay in escrow until it is resolved.")
}

func (a *API) escrowStep(
	w http.ResponseWriter,
	r *http.Request,
	step func(context.Context, string) (domain.EscrowTransaction, error),
	message string,
) {
	tx, err := step(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, transactionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, escrowStepResponse{Status: "success", Message: message, Transaction: &tx})
}

func (a *API) handleEscrowHistory(w http.ResponseWriter, r *http.Request) {
	if a.svc.Audit == nil {
		writeError(w, http.StatusServiceUnavailable, "audit ledger not configured")
		return
	}
	tx, err := a.svc.Escrow.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, transactionNotFound)
		return
	}
	entries, err := a.svc.Audit.History(r.Context(), tx.ID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, escrowHistoryResponse{TransactionID: tx.ID, Entries: entries})
}
