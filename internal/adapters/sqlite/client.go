package sqlite

import (
	"Bodi/internal/core/ports"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so recorded_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Ledger is a ports.LedgerPort backed by a single SQLite file, for
// deployments without Postgres.
type Ledger struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ ports.LedgerPort = (*Ledger)(nil)

// Open accepts sqlite:// DSNs, e.g. sqlite://./bodi.db or sqlite://:memory:.
func Open(ctx context.Context, dsn string, baseLogger *zerolog.Logger) (*Ledger, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// Each :memory: connection is its own database.
	if driverDSN == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	l := &Ledger{db: db, log: baseLogger.With().Str("component", "sqlite_ledger").Logger()}
	if err := l.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	l.log.Info().Str("dsn", driverDSN).Msg("SQLite ledger opened")
	return l, nil
}

func (l *Ledger) ensureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id          TEXT PRIMARY KEY,
		topic       TEXT NOT NULL,
		subject_id  TEXT NOT NULL,
		actor_id    TEXT NOT NULL DEFAULT '',
		payload     TEXT NOT NULL,
		sealed      TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_subject ON ledger_entries (subject_id, recorded_at);
	`
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating ledger schema: %w", err)
	}
	return nil
}

func (l *Ledger) Record(ctx context.Context, e ports.LedgerEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, topic, subject_id, actor_id, payload, sealed, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Topic, e.SubjectID, e.ActorID, string(e.Payload), e.Sealed,
		e.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		l.log.Error().Err(err).Str("subject_id", e.SubjectID).Str("topic", e.Topic).Msg("Failed to insert ledger entry")
		return fmt.Errorf("inserting ledger entry: %w", err)
	}
	return nil
}

// ListBySubject returns entries oldest first; ties keep insertion order.
func (l *Ledger) ListBySubject(ctx context.Context, subjectID string) ([]ports.LedgerEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, topic, subject_id, actor_id, payload, sealed, recorded_at
		 FROM ledger_entries WHERE subject_id = ? ORDER BY recorded_at, rowid`,
		subjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var out []ports.LedgerEntry
	for rows.Next() {
		var (
			e        ports.LedgerEntry
			payload  string
			recorded string
		)
		if err := rows.Scan(&e.ID, &e.Topic, &e.SubjectID, &e.ActorID, &payload, &e.Sealed, &recorded); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Payload = []byte(payload)
		if e.RecordedAt, err = time.Parse(timeLayout, recorded); err != nil {
			return nil, fmt.Errorf("parsing recorded_at %q: %w", recorded, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
