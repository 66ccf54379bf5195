package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EscrowInitiate is the tenant's request to open a transaction.
type EscrowInitiate struct {
	PropertyID string  `json:"property_id"`
	TenantID   string  `json:"tenant_id"`
	AmountNGN  float64 `json:"amount_ngn"`
}

// EscrowService drives transactions through the escrow state machine.
// Every edge walked is published as a domain.EscrowTransitioned event.
type EscrowService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
	ids   *IDGenerator
	now   func() time.Time
}

func NewEscrowService(store ports.Store, bus ports.EventBus, ids *IDGenerator, baseLogger *zerolog.Logger) *EscrowService {
	return &EscrowService{
		log:   baseLogger.With().Str("component", "escrow_service").Logger(),
		store: store,
		bus:   bus,
		ids:   ids,
		now:   time.Now,
	}
}

// Initiate opens a pending transaction. The landlord is the property owner
// at the time of the call.
func (s *EscrowService) Initiate(ctx context.Context, req EscrowInitiate) (domain.EscrowTransaction, error) {
	if strings.TrimSpace(req.TenantID) == "" {
		return domain.EscrowTransaction{}, fmt.Errorf("%w: tenant_id is required", domain.ErrValidation)
	}
	if req.AmountNGN <= 0 {
		return domain.EscrowTransaction{}, fmt.Errorf("%w: amount_ngn must be positive", domain.ErrValidation)
	}
	property, err := s.store.Properties().Get(ctx, req.PropertyID)
	if err != nil {
		return domain.EscrowTransaction{}, err
	}

	repo := s.store.Escrows()
	tx := domain.EscrowTransaction{
		ID:         s.ids.Next(ctx, "ESC", 5, repo.Exists),
		PropertyID: property.ID,
		TenantID:   req.TenantID,
		LandlordID: property.OwnerID,
		AmountNGN:  req.AmountNGN,
		Status:     domain.EscrowPending,
		CreatedAt:  s.now().UTC(),
	}
	if err := repo.Insert(ctx, tx); err != nil {
		return domain.EscrowTransaction{}, err
	}

	s.log.Info().
		Str("escrow_id", tx.ID).
		Str("property_id", tx.PropertyID).
		Str("amount", domain.FormatNaira(tx.AmountNGN)).
		Msg("Escrow initiated")
	publish(ctx, s.bus, &s.log, domain.TopicEscrowTransitioned, domain.EscrowTransitioned{
		Transaction: tx,
		To:          domain.EscrowPending,
		At:          tx.CreatedAt,
	})
	return tx, nil
}

func (s *EscrowService) Get(ctx context.Context, id string) (domain.EscrowTransaction, error) {
	return s.store.Escrows().Get(ctx, id)
}

// Release pays the landlord. Any happy-path edges not yet taken
// (deposit, hold) are walked first, so a pending transaction can be
// released in one call.
func (s *EscrowService) Release(ctx context.Context, id string) (domain.EscrowTransaction, error) {
	return s.advance(ctx, id, func(tx *domain.EscrowTransaction) ([]transition, error) {
		steps, err := tx.ReleaseSteps()
		if err != nil {
			return nil, err
		}
		return walk(tx, s.now().UTC(), steps...)
	})
}

func (s *EscrowService) Deposit(ctx context.Context, id string) (domain.EscrowTransaction, error) {
	return s.step(ctx, id, domain.EscrowDeposited)
}

func (s *EscrowService) Hold(ctx context.Context, id string) (domain.EscrowTransaction, error) {
	return s.step(ctx, id, domain.EscrowHeld)
}

func (s *EscrowService) Refund(ctx context.Context, id string) (domain.EscrowTransaction, error) {
	return s.step(ctx, id, domain.EscrowRefunded)
}

// Dispute freezes a transaction that has not been released.
func (s *EscrowService) Dispute(ctx context.Context, id, reason string) (domain.EscrowTransaction, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.EscrowTransaction{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	return s.advance(ctx, id, func(tx *domain.EscrowTransaction) ([]transition, error) {
		from, at := tx.Status, s.now().UTC()
		if err := tx.Dispute(reason, at); err != nil {
			return nil, err
		}
		return []transition{{from: from, to: domain.EscrowDisputed, at: at}}, nil
	})
}

type transition struct {
	from, to domain.EscrowStatus
	at       time.Time
}

func walk(tx *domain.EscrowTransaction, at time.Time, steps ...domain.EscrowStatus) ([]transition, error) {
	out := make([]transition, 0, len(steps))
	for _, to := range steps {
		from := tx.Status
		if err := tx.Transition(to, at); err != nil {
			return nil, err
		}
		out = append(out, transition{from: from, to: to, at: at})
	}
	return out, nil
}

func (s *EscrowService) step(ctx context.Context, id string, to domain.EscrowStatus) (domain.EscrowTransaction, error) {
	return s.advance(ctx, id, func(tx *domain.EscrowTransaction) ([]transition, error) {
		return walk(tx, s.now().UTC(), to)
	})
}

// advance loads, mutates and saves a transaction, then publishes one event
// per edge. Nothing is saved or published if mutate fails.
func (s *EscrowService) advance(ctx context.Context, id string, mutate func(*domain.EscrowTransaction) ([]transition, error)) (domain.EscrowTransaction, error) {
	tx, err := s.store.Escrows().Get(ctx, id)
	if err != nil {
		return domain.EscrowTransaction{}, err
	}
	edges, err := mutate(&tx)
	if err != nil {
		s.log.Warn().Err(err).Str("escrow_id", id).Msg("Rejected escrow transition")
		return domain.EscrowTransaction{}, err
	}
	if err := s.store.Escrows().Save(ctx, tx); err != nil {
		return domain.EscrowTransaction{}, err
	}

	for _, e := range edges {
		s.log.Info().
			Str("escrow_id", id).
			Str("from", string(e.from)).
			Str("to", string(e.to)).
			Msg("Escrow transitioned")
		publish(ctx, s.bus, &s.log, domain.TopicEscrowTransitioned, domain.EscrowTransitioned{
			Transaction: tx,
			From:        e.from,
			To:          e.to,
			At:          e.at,
		})
	}
	return tx, nil
}
