package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rowanfern/hearth/internal/store"
)

// keepSnapshots is how many historical snapshots survive a save; older
// rows are pruned so the file does not grow without bound.
const keepSnapshots = 20

// LoadSnapshot returns the most recent snapshot, or an empty one when the
// database is fresh.
func LoadSnapshot(db *sql.DB) (store.Snapshot, error) {
	var data string
	err := db.QueryRow(`SELECT data FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return store.Snapshot{}, nil
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// SaveSnapshot appends a snapshot row and prunes history beyond the
// retention count.
func SaveSnapshot(db *sql.DB, snap store.Snapshot, rev uint64) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO snapshots (rev, data) VALUES (?, ?)`, rev, string(data)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		keepSnapshots,
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return tx.Commit()
}
