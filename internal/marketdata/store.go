package marketdata

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Snapshot kinds stored per symbol.
const (
	snapshotFundamentals = "fundamentals"
	snapshotHistory      = "history"
)

// SnapshotStore persists fetched market data in a local SQLite file so
// repeated runs can reuse recent snapshots instead of refetching.
type SnapshotStore struct {
	db *sql.DB
}

// OpenSnapshotStore opens (creating if needed) the snapshot database.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db %s: %w", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		symbol     TEXT NOT NULL,
		kind       TEXT NOT NULL,
		payload    TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (symbol, kind)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

// Get loads the snapshot for symbol/kind into v if one exists and is
// younger than ttl. Returns false when there is no usable snapshot.
func (s *SnapshotStore) Get(symbol, kind string, ttl time.Duration, v interface{}) (bool, error) {
	var payload string
	var fetchedAt int64
	err := s.db.QueryRow(
		`SELECT payload, fetched_at FROM snapshots WHERE symbol = ? AND kind = ?`,
		symbol, kind,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s/%s: %w", symbol, kind, err)
	}

	if time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return false, nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s/%s: %w", symbol, kind, err)
	}
	return true, nil
}

// Put stores or replaces the snapshot for symbol/kind.
func (s *SnapshotStore) Put(symbol, kind string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s/%s: %w", symbol, kind, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (symbol, kind, payload, fetched_at) VALUES (?, ?, ?, ?)`,
		symbol, kind, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s/%s: %w", symbol, kind, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
