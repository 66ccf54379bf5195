package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditTopics are the events copied into the ledger.
var AuditTopics = []string{
	domain.TopicEscrowTransitioned,
	domain.TopicLocationShared,
	domain.TopicLocationShareEnded,
	domain.TopicEmergencyTriggered,
	domain.TopicUserVerified,
}

// AuditRecord is a ledger entry as shown to API clients. Sealed fields are
// never opened here.
type AuditRecord struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	SubjectID  string          `json:"subject_id"`
	ActorID    string          `json:"actor_id"`
	Payload    json.RawMessage `json:"payload"`
	HasSealed  bool            `json:"has_sealed"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// AuditRecorder copies escrow, safety and verification events into the
// ledger. Contact details are sealed with the security port and blanked in
// the clear payload.
type AuditRecorder struct {
	log    zerolog.Logger
	ledger ports.LedgerPort
	sec    ports.SecurityPort
	now    func() time.Time
}

func NewAuditRecorder(ledger ports.LedgerPort, sec ports.SecurityPort, baseLogger *zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{
		log:    baseLogger.With().Str("component", "audit_recorder").Logger(),
		ledger: ledger,
		sec:    sec,
		now:    time.Now,
	}
}

// Register subscribes the recorder to every audited topic.
func (a *AuditRecorder) Register(bus ports.EventBus) {
	for _, topic := range AuditTopics {
		bus.Subscribe(topic, a.Handle)
	}
}

// Handle is the event handler. It is exported so tests and synchronous
// callers can record without a bus.
func (a *AuditRecorder) Handle(ctx context.Context, ev ports.Event) error {
	entry, err := a.entryFor(ev)
	if err != nil {
		a.log.Error().Err(err).Str("topic", ev.Topic).Msg("Failed to build ledger entry")
		return err
	}
	if err := a.ledger.Record(ctx, entry); err != nil {
		a.log.Error().Err(err).Str("topic", ev.Topic).Str("subject_id", entry.SubjectID).Msg("Failed to record ledger entry")
		return err
	}
	a.log.Debug().Str("topic", ev.Topic).Str("subject_id", entry.SubjectID).Msg("Ledger entry recorded")
	return nil
}

func (a *AuditRecorder) entryFor(ev ports.Event) (ports.LedgerEntry, error) {
	entry := ports.LedgerEntry{
		ID:         uuid.NewString(),
		Topic:      ev.Topic,
		RecordedAt: a.now().UTC(),
	}

	var (
		payload   any
		sensitive string
	)
	switch data := ev.Data.(type) {
	case domain.EscrowTransitioned:
		entry.SubjectID, entry.ActorID = data.Transaction.ID, data.Transaction.TenantID
		payload = data
	case domain.LocationShare:
		entry.SubjectID, entry.ActorID = data.ID, data.UserID
		sensitive, data.EmergencyContact = data.EmergencyContact, ""
		payload = data
	case domain.EmergencyAlert:
		entry.SubjectID, entry.ActorID = data.LocationShareID, data.UserID
		sensitive, data.EmergencyContact = data.EmergencyContact, ""
		payload = data
	case domain.UserVerified:
		entry.SubjectID, entry.ActorID = data.User.ID, data.User.ID
		sensitive, data.User.Phone = data.User.Phone, ""
		payload = data
	default:
		return ports.LedgerEntry{}, fmt.Errorf("unsupported event payload %T", ev.Data)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ports.LedgerEntry{}, fmt.Errorf("encode payload: %w", err)
	}
	entry.Payload = raw

	if sensitive != "" && a.sec != nil {
		sealed, err := a.sec.Seal(sensitive)
		if err != nil {
			return ports.LedgerEntry{}, fmt.Errorf("seal: %w", err)
		}
		entry.Sealed = sealed
	}
	return entry, nil
}

// History returns the audit trail for one escrow transaction, location
// share or user, oldest first.
func (a *AuditRecorder) History(ctx context.Context, subjectID string) ([]AuditRecord, error) {
	entries, err := a.ledger.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	out := make([]AuditRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditRecord{
			ID:         e.ID,
			Topic:      e.Topic,
			SubjectID:  e.SubjectID,
			ActorID:    e.ActorID,
			Payload:    json.RawMessage(e.Payload),
			HasSealed:  e.Sealed != "",
			RecordedAt: e.RecordedAt,
		})
	}
	return out, nil
}
