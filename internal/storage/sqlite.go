// Package storage provides SQLite-based persistence for solved layouts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for layout persistence.
type Store struct {
	db *sql.DB
}

// LayoutEntry represents a single stored layout. Data holds the YAML
// serialization of the full layout.
type LayoutEntry struct {
	ID            int64
	Name          string
	Strategy      string
	Seed          uint64
	FrameCount    int
	PlatformCount int
	WallCount     int
	Data          []byte
	CreatedAt     time.Time
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
		CREATE TABLE IF NOT EXISTS layouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			strategy TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			frame_count INTEGER NOT NULL,
			platform_count INTEGER NOT NULL,
			wall_count INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_layouts_name ON layouts(name);
		CREATE INDEX IF NOT EXISTS idx_layouts_recent ON layouts(created_at DESC);
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

// SaveLayout records a solved layout. Returns the ID of the inserted record.
func (s *Store) SaveLayout(e LayoutEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO layouts (name, strategy, seed, frame_count, platform_count, wall_count, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Strategy, int64(e.Seed), e.FrameCount, e.PlatformCount, e.WallCount, e.Data,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save layout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LayoutByID retrieves a layout by ID. Returns (nil, nil) when absent.
func (s *Store) LayoutByID(id int64) (*LayoutEntry, error) {
	var e LayoutEntry
	var seed int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, name, strategy, seed, frame_count, platform_count, wall_count, data, created_at
		 FROM layouts
		 WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Name, &e.Strategy, &seed, &e.FrameCount, &e.PlatformCount, &e.WallCount, &e.Data, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout: %w", err)
	}

	e.Seed = uint64(seed)
	e.CreatedAt = parseCreatedAt(createdAt)
	return &e, nil
}

// RecentLayouts retrieves the most recently saved layouts.
func (s *Store) RecentLayouts(limit int) ([]LayoutEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, strategy, seed, frame_count, platform_count, wall_count, data, created_at
		 FROM layouts
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var entries []LayoutEntry
	for rows.Next() {
		var e LayoutEntry
		var seed int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Strategy, &seed, &e.FrameCount, &e.PlatformCount, &e.WallCount, &e.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint64(seed)
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteLayout removes a stored layout by ID.
func (s *Store) DeleteLayout(id int64) error {
	_, err := s.db.Exec("DELETE FROM layouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout: %w", err)
	}
	return nil
}

// parseCreatedAt handles both time.Time and string representations the
// driver may return.
func parseCreatedAt(v any) time.Time {
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
