// Package storage persists player progress.
// The default backend is SQLite via the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/parabola-world/internal/progression"
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// CompletionEntry is one solved level instance.
type CompletionEntry struct {
	ID        int64
	Profile   string
	Mode      string
	Level     int
	Attempts  int
	CreatedAt time.Time
}

// LevelStats aggregates the completions of one level for a profile.
type LevelStats struct {
	Level        int
	Completions  int
	BestAttempts int
	LastSolved   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

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

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 0,
			max_level INTEGER NOT NULL DEFAULT 0,
			music_muted INTEGER NOT NULL DEFAULT 0,
			boot_complete INTEGER NOT NULL DEFAULT 0,
			user_name TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			mode TEXT NOT NULL,
			level INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_profile ON completions(profile);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(profile, level);
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

// SaveProgress upserts the persisted blob of a profile.
func (s *Store) SaveProgress(profile string, p progression.Persisted) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, level, max_level, music_muted, boot_complete, user_name, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
			level = excluded.level,
			max_level = excluded.max_level,
			music_muted = excluded.music_muted,
			boot_complete = excluded.boot_complete,
			user_name = excluded.user_name,
			updated_at = CURRENT_TIMESTAMP`,
		profile, p.Level, p.MaxLevel, p.MusicMuted, p.BootComplete, p.UserName,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the blob of a profile. The bool is false when the
// profile has never been saved.
func (s *Store) LoadProgress(profile string) (progression.Persisted, bool, error) {
	var p progression.Persisted
	err := s.db.QueryRow(
		`SELECT level, max_level, music_muted, boot_complete, user_name
		 FROM progress WHERE profile = ?`,
		profile,
	).Scan(&p.Level, &p.MaxLevel, &p.MusicMuted, &p.BootComplete, &p.UserName)

	if errors.Is(err, sql.ErrNoRows) {
		return progression.Persisted{}, false, nil
	}
	if err != nil {
		return progression.Persisted{}, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return p, true, nil
}

// ResetProgress forgets a profile, its completion history included.
func (s *Store) ResetProgress(profile string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM completions WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// Profiles lists every saved profile in name order.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT profile FROM progress ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// RecordCompletion logs a solved level. Returns the ID of the inserted record.
func (s *Store) RecordCompletion(profile, mode string, level, attempts int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (profile, mode, level, attempts) VALUES (?, ?, ?, ?)",
		profile, mode, level, attempts,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Completions returns the most recent completions of a profile, newest first.
func (s *Store) Completions(profile string, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, mode, level, attempts, created_at
		 FROM completions
		 WHERE profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.Mode, &e.Level, &e.Attempts, &createdAt); err != nil {
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

// LevelStats aggregates the completions of a profile per level.
func (s *Store) LevelStats(profile string) (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(attempts), MAX(created_at)
		 FROM completions
		 WHERE profile = ?
		 GROUP BY level`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastSolved any
		if err := rows.Scan(&ls.Level, &ls.Completions, &ls.BestAttempts, &lastSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastSolved = parseTime(lastSolved)
		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and the SQLite text format.
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

var (
	_ Backend  = (*Store)(nil)
	_ Recorder = (*Store)(nil)
)
