package ports

import (
	"context"
	"time"
)

// LedgerEntry is one append-only audit record.
type LedgerEntry struct {
	ID         string
	Topic      string
	SubjectID  string
	ActorID    string
	Payload    []byte // JSON
	Sealed     string // encrypted, base64; empty when nothing sensitive
	RecordedAt time.Time
}

// LedgerPort persists escrow and safety events outside the in-memory store.
type LedgerPort interface {
	// Record appends an entry.
	Record(ctx context.Context, entry LedgerEntry) error

	// ListBySubject returns the entries for one entity, oldest first.
	ListBySubject(ctx context.Context, subjectID string) ([]LedgerEntry, error)

	// Ping reports whether the backing store is reachable. Used by /healthz.
	Ping(ctx context.Context) error

	Close() error
}
