package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/san-kum/pvtlab/internal/pvt"
)

const schema = `
CREATE TABLE IF NOT EXISTS params (
	session_id TEXT NOT NULL,
	formula_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	value      DOUBLE NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, formula_id, name)
);
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SQLStore persists parameter values in SQLite, scoped to one session.
type SQLStore struct {
	db      *sql.DB
	session string
}

// OpenSQL opens (or creates) the database at path. An empty session starts
// a new one.
func OpenSQL(path, session string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one connection keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if session == "" {
		session = uuid.NewString()
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO sessions (session_id) VALUES (?)", session); err != nil {
		db.Close()
		return nil, fmt.Errorf("register session: %w", err)
	}
	return &SQLStore{db: db, session: session}, nil
}

// Session is the id values are stored under.
func (s *SQLStore) Session() string { return s.session }

func (s *SQLStore) Get(ctx context.Context, formulaID, param string) (float64, bool, error) {
	var v float64
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM params WHERE session_id = ? AND formula_id = ? AND name = ?",
		s.session, formulaID, param).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %s/%s: %w", formulaID, param, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, formulaID, param string, v float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO params (session_id, formula_id, name, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id, formula_id, name)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.session, formulaID, param, v, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", formulaID, param, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, formulaID, param string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM params WHERE session_id = ? AND formula_id = ? AND name = ?",
		s.session, formulaID, param)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", formulaID, param, err)
	}
	return nil
}

func (s *SQLStore) Snapshot(ctx context.Context, formulaID string) (pvt.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, value FROM params WHERE session_id = ? AND formula_id = ?",
		s.session, formulaID)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", formulaID, err)
	}
	defer rows.Close()

	snap := make(pvt.Snapshot)
	for rows.Next() {
		var name string
		var v float64
		if err := rows.Scan(&name, &v); err != nil {
			return nil, err
		}
		snap[name] = v
	}
	return snap, rows.Err()
}

func (s *SQLStore) Formulas(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT formula_id FROM params WHERE session_id = ? ORDER BY formula_id",
		s.session)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Sessions lists every session id in the database, oldest first.
func (s *SQLStore) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT session_id FROM sessions ORDER BY created_at, session_id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
