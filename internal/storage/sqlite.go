// Package storage provides SQLite-based persistence for state snapshots and
// the reload journal. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/helix/internal/host"
	"github.com/vovakirdan/helix/internal/state"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Snapshot is a saved state record.
type Snapshot struct {
	ID        int64
	ModuleID  string
	Schema    uint16
	Flags     uint16
	Payload   []byte
	CreatedAt time.Time
}

// EventEntry is one journaled host event.
type EventEntry struct {
	ID         int64
	ModuleID   string
	Generation int
	Kind       string
	Detail     string
	CreatedAt  time.Time
}

// ModuleStats aggregates the journal of one module.
type ModuleStats struct {
	ModuleID      string
	Loads         int
	Reloads       int
	Failures      int
	MaxGeneration int
	LastEvent     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			module_id TEXT NOT NULL,
			schema INTEGER NOT NULL,
			flags INTEGER NOT NULL DEFAULT 0,
			payload BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_module ON snapshots(module_id, id DESC);

		CREATE TABLE IF NOT EXISTS reload_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			module_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reload_events_module ON reload_events(module_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores the current record of b for moduleID.
// Returns the ID of the inserted snapshot.
func (s *Store) SaveSnapshot(moduleID string, b *state.Block) (int64, error) {
	h, err := b.Header()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot snapshot: %w", err)
	}
	_, payload, err := b.Read()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot snapshot: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO snapshots (module_id, schema, flags, payload) VALUES (?, ?, ?, ?)",
		moduleID, h.Schema, h.Flags, payload,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LatestSnapshot returns the newest snapshot of moduleID whose schema is one
// of schemas (any schema when none are given). Returns nil if there is none.
func (s *Store) LatestSnapshot(moduleID string, schemas ...uint16) (*Snapshot, error) {
	snaps, err := s.Snapshots(moduleID, 0)
	if err != nil {
		return nil, err
	}
	for i := range snaps {
		if len(schemas) == 0 || containsSchema(schemas, snaps[i].Schema) {
			return &snaps[i], nil
		}
	}
	return nil, nil
}

func containsSchema(schemas []uint16, schema uint16) bool {
	for _, s := range schemas {
		if s == schema {
			return true
		}
	}
	return false
}

// Snapshots lists snapshots of moduleID, newest first. A limit of 0 returns
// all of them.
func (s *Store) Snapshots(moduleID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT id, module_id, schema, flags, payload, created_at
		 FROM snapshots
		 WHERE module_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		moduleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt any
		if err := rows.Scan(&snap.ID, &snap.ModuleID, &snap.Schema, &snap.Flags, &snap.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		snap.CreatedAt = parseTime(createdAt)
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snaps, nil
}

// Restore writes the snapshot into b as the current record.
func (snap *Snapshot) Restore(b *state.Block) error {
	if snap.Flags&state.FlagForeign != 0 {
		if len(snap.Payload) > b.Capacity() {
			return fmt.Errorf("storage: restore: %w", state.ErrTooLarge)
		}
		copy(b.Payload(), snap.Payload)
		b.MarkForeign(snap.Schema)
		return nil
	}
	if err := b.Write(snap.Schema, snap.Payload); err != nil {
		return fmt.Errorf("storage: restore: %w", err)
	}
	return nil
}

// DeleteSnapshots deletes all snapshots of moduleID.
func (s *Store) DeleteSnapshots(moduleID string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE module_id = ?", moduleID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete snapshots: %w", err)
	}
	return nil
}

// Record implements host.Journal.
func (s *Store) Record(ev host.Event) error {
	_, err := s.db.Exec(
		"INSERT INTO reload_events (module_id, generation, kind, detail) VALUES (?, ?, ?, ?)",
		ev.Module, ev.Generation, ev.Kind, ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record event: %w", err)
	}
	return nil
}

// Ensure Store implements host.Journal
var _ host.Journal = (*Store)(nil)

// Events lists journal entries, newest first. An empty moduleID lists every
// module.
func (s *Store) Events(moduleID string, limit int) ([]EventEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, module_id, generation, kind, detail, created_at
		 FROM reload_events
		 WHERE ? = '' OR module_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		moduleID, moduleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var entries []EventEntry
	for rows.Next() {
		var e EventEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModuleID, &e.Generation, &e.Kind, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// JournalStats aggregates the journal per module.
func (s *Store) JournalStats() (map[string]*ModuleStats, error) {
	rows, err := s.db.Query(
		`SELECT module_id,
		        SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END),
		        MAX(generation),
		        MAX(created_at)
		 FROM reload_events
		 GROUP BY module_id`,
		host.EventLoad, host.EventReload, host.EventFailure,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get journal stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModuleStats)
	for rows.Next() {
		var m ModuleStats
		var last any
		if err := rows.Scan(&m.ModuleID, &m.Loads, &m.Reloads, &m.Failures, &m.MaxGeneration, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastEvent = parseTime(last)
		stats[m.ModuleID] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
