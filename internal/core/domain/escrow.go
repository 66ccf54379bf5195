package domain

import (
	"fmt"
	"time"
)

// EscrowStatus is the lifecycle state of held funds.
type EscrowStatus string

const (
	EscrowPending   EscrowStatus = "pending"
	EscrowDeposited EscrowStatus = "deposited"
	EscrowHeld      EscrowStatus = "held"
	EscrowReleased  EscrowStatus = "released"
	EscrowDisputed  EscrowStatus = "disputed"
	EscrowRefunded  EscrowStatus = "refunded"
)

// escrowEdges holds every legal transition. Released and refunded are terminal.
var escrowEdges = map[EscrowStatus][]EscrowStatus{
	EscrowPending:   {EscrowDeposited, EscrowDisputed},
	EscrowDeposited: {EscrowHeld, EscrowDisputed},
	EscrowHeld:      {EscrowReleased, EscrowDisputed},
	EscrowDisputed:  {EscrowRefunded},
}

// releasePath is the happy path a release walks from wherever it starts.
var releasePath = []EscrowStatus{EscrowPending, EscrowDeposited, EscrowHeld, EscrowReleased}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to EscrowStatus) bool {
	for _, next := range escrowEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s EscrowStatus) Terminal() bool {
	return len(escrowEdges[s]) == 0
}

// Active reports whether the transaction still counts toward a landlord's open escrows.
func (s EscrowStatus) Active() bool {
	return s == EscrowPending || s == EscrowDeposited
}

// EscrowTransaction holds a tenant's payment until move-in is confirmed.
type EscrowTransaction struct {
	ID            string       `json:"id"`
	PropertyID    string       `json:"property_id"`
	TenantID      string       `json:"tenant_id"`
	LandlordID    string       `json:"landlord_id"`
	AmountNGN     float64      `json:"amount_ngn"`
	Status        EscrowStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at"`
	DisputeReason *string      `json:"dispute_reason"`
}

// Transition moves the transaction along one legal edge.
func (e *EscrowTransaction) Transition(to EscrowStatus, at time.Time) error {
	if !CanTransition(e.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, to)
	}
	e.Status = to
	if to.Terminal() {
		done := at
		e.CompletedAt = &done
	}
	return nil
}

// Dispute moves the transaction to disputed and records why.
func (e *EscrowTransaction) Dispute(reason string, at time.Time) error {
	if err := e.Transition(EscrowDisputed, at); err != nil {
		return err
	}
	e.DisputeReason = &reason
	return nil
}

// ReleaseSteps returns the edges a release has to walk from the current status,
// or ErrInvalidTransition when released cannot be reached.
func (e *EscrowTransaction) ReleaseSteps() ([]EscrowStatus, error) {
	for i, s := range releasePath[:len(releasePath)-1] {
		if s == e.Status {
			return append([]EscrowStatus(nil), releasePath[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%w: cannot release from %s", ErrInvalidTransition, e.Status)
}
