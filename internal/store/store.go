// apps/rl-agent/internal/store/store.go
//
// SQLite-backed session history for the RL agent.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout).
//   - Creating the sessions schema (idempotent).
//   - Inserting finished sessions and querying recent history / stats.
//
// The store is a best-effort collaborator: callers treat a nil *Store or
// an insert error as "no history this run", never as a reason to abort
// training or play.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/episode"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    played_at  TEXT NOT NULL,
    secret     TEXT NOT NULL,
    guesses    INTEGER NOT NULL,
    won        INTEGER NOT NULL,
    steps      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_played_at ON sessions(played_at);
`

// Store wraps the sessions database.
type Store struct{ db *sql.DB }

// Open opens (and creates if missing) the SQLite database at dsn and
// applies the schema.
//
//   - Ensures the parent directory exists for relative DSNs (./data/rl.db).
//   - Configures busy timeout and WAL journaling mode.
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// InsertSession records a finished play-through. Steps are stored as a
// JSON column; the row itself carries the queryable summary fields.
func (s *Store) InsertSession(ctx context.Context, sess *episode.Session) error {
	steps, err := json.Marshal(sess.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (played_at, secret, guesses, won, steps)
        VALUES (?, ?, ?, ?, ?)`,
		sess.Timestamp.UTC().Format(time.RFC3339), sess.Secret,
		len(sess.Steps), boolToInt(sess.Won), string(steps),
	)
	return err
}

// Row is the summary shape returned for history queries.
type Row struct {
	ID       int64     `json:"id"`
	PlayedAt time.Time `json:"playedAt"`
	Secret   string    `json:"secret"`
	Guesses  int       `json:"guesses"`
	Won      bool      `json:"won"`
}

// RecentSessions fetches the most recent sessions, newest first.
// Default limit is 20 if not specified.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, played_at, secret, guesses, won
        FROM sessions
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0, limit)
	for rows.Next() {
		var r Row
		var playedAt string
		var won int
		if err := rows.Scan(&r.ID, &playedAt, &r.Secret, &r.Guesses, &won); err != nil {
			return nil, err
		}
		r.PlayedAt, _ = time.Parse(time.RFC3339, playedAt)
		r.Won = won != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns total games and wins recorded.
func (s *Store) Stats(ctx context.Context) (games, wins int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(won), 0) FROM sessions`,
	).Scan(&games, &wins)
	return games, wins, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
