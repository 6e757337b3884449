// Package storage provides SQLite-based persistence for player preferences.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for preference persistence.
type Store struct {
	db *sql.DB
}

// Preference is one stored key/value pair.
type Preference struct {
	User      string
	Key       string
	Value     string
	UpdatedAt time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS preferences (
			username TEXT NOT NULL,
			pref_key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (username, pref_key)
		);
		CREATE INDEX IF NOT EXISTS idx_preferences_username ON preferences(username);
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

// GetPreference returns the stored value of key for user.
// The boolean is false when nothing is stored.
func (s *Store) GetPreference(user, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM preferences WHERE username = ? AND pref_key = ?",
		user, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query preference: %w", err)
	}
	return value, true, nil
}

// SetPreference stores value under key for user, replacing any previous value.
func (s *Store) SetPreference(user, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (username, pref_key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(username, pref_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		user, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference: %w", err)
	}
	return nil
}

// DeletePreference removes key for user. Deleting a missing key is not an error.
func (s *Store) DeletePreference(user, key string) error {
	_, err := s.db.Exec("DELETE FROM preferences WHERE username = ? AND pref_key = ?", user, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete preference: %w", err)
	}
	return nil
}

// Preferences returns every stored preference of user, ordered by key.
func (s *Store) Preferences(user string) ([]Preference, error) {
	rows, err := s.db.Query(
		`SELECT username, pref_key, value, updated_at
		 FROM preferences
		 WHERE username = ?
		 ORDER BY pref_key`,
		user,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []Preference
	for rows.Next() {
		var p Preference
		var updatedAt any
		if err := rows.Scan(&p.User, &p.Key, &p.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			p.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				p.UpdatedAt = parsed
			}
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return prefs, nil
}

// Users returns every user with stored preferences, sorted.
func (s *Store) Users() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT username FROM preferences ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return users, nil
}
