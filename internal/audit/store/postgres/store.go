// Package postgres persists decision records in a decision_log table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"remedia/internal/audit"
)

// Schema is the table this store appends to. Applied out-of-band by the
// deployment's migration step.
const Schema = `
CREATE TABLE IF NOT EXISTS decision_log (
    id             UUID PRIMARY KEY,
    threat_id      TEXT NOT NULL,
    recommendation TEXT NOT NULL,
    destructive    BOOLEAN NOT NULL,
    approved       BOOLEAN NOT NULL,
    notes          TEXT NOT NULL DEFAULT '',
    request_id     TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS decision_log_threat_id_idx ON decision_log (threat_id);
`

// Store appends decision records over database/sql. The table has no UPDATE
// or DELETE path in this codebase; it is append-only by construction.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects via the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (s *Store) Append(ctx context.Context, rec audit.Record) error {
	query := `
		INSERT INTO decision_log (id, threat_id, recommendation, destructive, approved, notes, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.ThreatID,
		rec.Recommendation,
		rec.Destructive,
		rec.Approved,
		rec.Notes,
		rec.RequestID,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert decision record: %w", err)
	}
	return nil
}
