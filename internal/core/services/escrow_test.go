package services

import (
	"Bodi/internal/core/domain"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEscrowService() (*EscrowService, *recordingBus) {
	nopLogger := zerolog.Nop()
	bus := &recordingBus{}
	svc := NewEscrowService(newFixtureStore(), bus, NewIDGenerator(11), &nopLogger)
	svc.now = fixedClock
	return svc, bus
}

func TestEscrowService_Initiate(t *testing.T) {
	svc, bus := newEscrowService()
	ctx := context.Background()

	tx, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-002", TenantID: "USR-001", AmountNGN: 4500000})
	require.NoError(t, err)
	assert.Regexp(t, `^ESC-\d{5}$`, tx.ID)
	assert.Equal(t, domain.EscrowPending, tx.Status)
	assert.Equal(t, "USR-002", tx.LandlordID)
	assert.Equal(t, fixedNow, tx.CreatedAt)
	assert.Nil(t, tx.CompletedAt)

	got, err := svc.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	ev := bus.last().Data.(domain.EscrowTransitioned)
	assert.Equal(t, domain.EscrowStatus(""), ev.From)
	assert.Equal(t, domain.EscrowPending, ev.To)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-002", TenantID: "USR-001", AmountNGN: 0})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-002", AmountNGN: 10})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "NOPE-1", TenantID: "USR-001", AmountNGN: 10})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEscrowService_ReleaseFromPending(t *testing.T) {
	svc, bus := newEscrowService()
	ctx := context.Background()

	tx, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-001", TenantID: "USR-002", AmountNGN: 800000})
	require.NoError(t, err)

	released, err := svc.Release(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, released.Status)
	require.NotNil(t, released.CompletedAt)
	assert.Equal(t, fixedNow, *released.CompletedAt)

	var walked []domain.EscrowStatus
	for _, e := range bus.events[1:] {
		walked = append(walked, e.Data.(domain.EscrowTransitioned).To)
	}
	assert.Equal(t, []domain.EscrowStatus{domain.EscrowDeposited, domain.EscrowHeld, domain.EscrowReleased}, walked)

	_, err = svc.Release(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEscrowService_StepByStep(t *testing.T) {
	svc, _ := newEscrowService()
	ctx := context.Background()

	tx, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-001", TenantID: "USR-002", AmountNGN: 800000})
	require.NoError(t, err)

	_, err = svc.Hold(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "hold before deposit")

	tx, err = svc.Deposit(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowDeposited, tx.Status)

	tx, err = svc.Hold(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowHeld, tx.Status)
	assert.Nil(t, tx.CompletedAt)

	tx, err = svc.Release(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, tx.Status)
}

func TestEscrowService_DisputeAndRefund(t *testing.T) {
	svc, _ := newEscrowService()
	ctx := context.Background()

	tx, err := svc.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-001", TenantID: "USR-002", AmountNGN: 800000})
	require.NoError(t, err)

	_, err = svc.Dispute(ctx, tx.ID, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Refund(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "refund before dispute")

	tx, err = svc.Dispute(ctx, tx.ID, "Landlord stopped answering calls")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowDisputed, tx.Status)
	require.NotNil(t, tx.DisputeReason)
	assert.Equal(t, "Landlord stopped answering calls", *tx.DisputeReason)

	_, err = svc.Release(ctx, tx.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	tx, err = svc.Refund(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowRefunded, tx.Status)
	assert.NotNil(t, tx.CompletedAt)

	stored, err := svc.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowRefunded, stored.Status)
}

func TestEscrowService_UnknownTransaction(t *testing.T) {
	svc, _ := newEscrowService()
	_, err := svc.Release(context.Background(), "ESC-00000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
