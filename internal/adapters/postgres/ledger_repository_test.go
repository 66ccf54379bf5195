package postgres

import (
	"Bodi/internal/core/ports"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestLedgerRepository_Record_ListBySubject_Roundtrip(t *testing.T) {
	// 1. Setup
	nopLogger := zerolog.Nop()
	repo := &ledgerRepository{db: testDB, log: nopLogger}
	ctx := context.Background()

	subject := "ESC-" + uuid.NewString()[:8]
	defer cleanupSubject(t, subject)

	base := time.Now().UTC().Truncate(time.Microsecond)
	first := ports.LedgerEntry{
		ID:         uuid.NewString(),
		Topic:      "escrow:transitioned",
		SubjectID:  subject,
		ActorID:    "USR-002",
		Payload:    []byte(`{"to":"pending"}`),
		RecordedAt: base,
	}
	second := first
	second.ID = uuid.NewString()
	second.Payload = []byte(`{"to":"released"}`)
	second.Sealed = "c2VhbGVk"
	second.RecordedAt = base.Add(time.Second)

	// 2. Record out of order
	if err := repo.Record(ctx, second); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}
	if err := repo.Record(ctx, first); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}

	// 3. List
	got, err := repo.ListBySubject(ctx, subject)
	if err != nil {
		t.Fatalf("Failed to list ledger: %v", err)
	}

	// 4. Verify
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("entries not ordered by recorded_at: %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Sealed != "c2VhbGVk" {
		t.Errorf("Sealed mismatch: got %q", got[1].Sealed)
	}
	if !got[0].RecordedAt.Equal(base) {
		t.Errorf("RecordedAt mismatch: got %v, want %v", got[0].RecordedAt, base)
	}
}

func TestLedgerRepository_Record_RejectsBadID(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := &ledgerRepository{db: testDB, log: nopLogger}

	err := repo.Record(context.Background(), ports.LedgerEntry{ID: "not-a-uuid", SubjectID: "x", Payload: []byte(`{}`)})
	if err == nil {
		t.Fatal("expected an error for a non-uuid id")
	}
}
