package postgres

import (
	"Bodi/internal/core/ports"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type ledgerRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.LedgerPort = (*ledgerRepository)(nil)

// NewLedgerRepository stores audit entries in ledger_entries. The schema
// must exist; see DB.EnsureSchema.
func NewLedgerRepository(db *DB, baseLogger *zerolog.Logger) ports.LedgerPort {
	return &ledgerRepository{
		db:  db,
		log: baseLogger.With().Str("component", "ledger_repo").Logger(),
	}
}

func (r *ledgerRepository) Record(ctx context.Context, e ports.LedgerEntry) error {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return fmt.Errorf("ledger entry id: %w", err)
	}

	query := `
		INSERT INTO ledger_entries (id, topic, subject_id, actor_id, payload, sealed, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.pool.Exec(ctx, query,
		id,
		e.Topic,
		e.SubjectID,
		e.ActorID,
		e.Payload,
		e.Sealed,
		e.RecordedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("subject_id", e.SubjectID).Str("topic", e.Topic).Msg("Failed to insert ledger entry")
		return err
	}
	return nil
}

func (r *ledgerRepository) ListBySubject(ctx context.Context, subjectID string) ([]ports.LedgerEntry, error) {
	query := `
		SELECT id, topic, subject_id, actor_id, payload, sealed, recorded_at
		FROM ledger_entries
		WHERE subject_id = $1
		ORDER BY recorded_at, id
	`
	rows, err := r.db.pool.Query(ctx, query, subjectID)
	if err != nil {
		r.log.Error().Err(err).Str("subject_id", subjectID).Msg("Failed to query ledger")
		return nil, err
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ports.LedgerEntry, error) {
		var (
			e  ports.LedgerEntry
			id uuid.UUID
		)
		err := row.Scan(&id, &e.Topic, &e.SubjectID, &e.ActorID, &e.Payload, &e.Sealed, &e.RecordedAt)
		e.ID = id.String()
		return e, err
	})
	if err != nil {
		r.log.Error().Err(err).Str("subject_id", subjectID).Msg("Failed to scan ledger rows")
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepository) Ping(ctx context.Context) error {
	return r.db.pool.Ping(ctx)
}

// Close releases the pool. The repository owns the DB it was given.
func (r *ledgerRepository) Close() error {
	r.db.Close()
	return nil
}
