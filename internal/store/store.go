package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const probeKey = "__wt_probe__"

// Store is a key/value document store over a single sqlite table. Each
// value is one whole JSON document; every save is an atomic overwrite.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get document %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO documents(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set document %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}

// Keys returns all keys starting with prefix, ascending. substr avoids
// LIKE wildcard semantics for prefixes containing '_'.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(`
SELECT key FROM documents
WHERE substr(key, 1, ?) = ?
ORDER BY key ASC
`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list document keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan document key: %w", err)
		}
		if key == probeKey {
			continue
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document keys: %w", err)
	}
	return keys, nil
}

// Available probes the store with a write/delete round-trip. Callers
// re-probe on every operation rather than caching the result, since the
// backing file can become unwritable mid-session.
func (s *Store) Available() bool {
	if _, err := s.db.Exec(`
INSERT INTO documents(key, value, updated_at)
VALUES(?, 'ok', CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, probeKey); err != nil {
		return false
	}
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, probeKey); err != nil {
		return false
	}
	return true
}
