package services

import (
	"Bodi/internal/adapters/memory"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixtureProperties() []domain.Property {
	return []domain.Property{
		{ID: "LAG-001", Title: "Modern 2-Bedroom Apartment", Location: "Yaba, Lagos", PriceNGN: 800000, Type: domain.PropertyApartment, Verified: true, SafetyScore: 8.5, OwnerID: "USR-001"},
		{ID: "LAG-002", Title: "Luxury 4-Bedroom Duplex", Location: "Lekki Phase 1, Lagos", PriceNGN: 4500000, Type: domain.PropertyDuplex, Verified: true, SafetyScore: 9.2, OwnerID: "USR-002"},
		{ID: "LAG-003", Title: "Cozy Studio", Location: "Akoka, Lagos", PriceNGN: 450000, Type: domain.PropertyStudio, Verified: false, SafetyScore: 7.1, OwnerID: "USR-001"},
		{ID: "ABJ-001", Title: "Executive Flat", Location: "Wuse 2, Abuja", PriceNGN: 1800000, Type: domain.PropertyFlat, Verified: true, SafetyScore: 8.8, OwnerID: "USR-002"},
		{ID: "ABJ-002", Title: "Family Bungalow", Location: "Gwarinpa, Abuja", PriceNGN: 1200000, Type: domain.PropertyBungalow, Verified: false, SafetyScore: 7.4, OwnerID: "USR-001"},
	}
}

func newFixtureStore() *memory.Store {
	nopLogger := zerolog.Nop()
	store := memory.NewStore(&nopLogger)
	store.Seed(memory.DefaultSeed(fixtureProperties(), fixedNow))
	return store
}

// recordingBus delivers nothing and keeps every published event in order.
type recordingBus struct {
	mu     sync.Mutex
	events []ports.Event
}

func (b *recordingBus) Publish(_ context.Context, topic string, data any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ports.Event{Topic: topic, Data: data})
	return nil
}

func (b *recordingBus) Subscribe(string, ports.EventHandler) {}

func (b *recordingBus) Wait() {}

func (b *recordingBus) topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Topic)
	}
	return out
}

func (b *recordingBus) last() ports.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.events[len(b.events)-1]
}

type MockCompletion struct {
	mock.Mock
}

func (m *MockCompletion) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockWebSearch struct {
	mock.Mock
}

func (m *MockWebSearch) Search(ctx context.Context, req ports.WebSearchRequest) ([]domain.WebResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.([]domain.WebResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) PresignUpload(ctx context.Context, key, contentType string) (ports.PresignedUpload, error) {
	args := m.Called(ctx, key, contentType)
	return args.Get(0).(ports.PresignedUpload), args.Error(1)
}

// memLedger is an in-process ports.LedgerPort.
type memLedger struct {
	mu      sync.Mutex
	entries []ports.LedgerEntry
}

func (l *memLedger) Record(_ context.Context, e ports.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *memLedger) ListBySubject(_ context.Context, subjectID string) ([]ports.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ports.LedgerEntry
	for _, e := range l.entries {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *memLedger) Ping(context.Context) error { return nil }

func (l *memLedger) Close() error { return nil }

func fixedClock() time.Time { return fixedNow }
