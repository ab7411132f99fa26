package state

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists values in a single-table SQLite database under the
// data directory. Survives concurrent CLI and server access via WAL mode.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	dataPath = strings.TrimSpace(dataPath)
	if dataPath == "" {
		return nil, fmt.Errorf("dataPath is required")
	}
	dataPath = filepath.Clean(dataPath)
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create state data dir: %w", err)
	}

	dbPath := filepath.Join(dataPath, "state.db")
	dsn := dbPath + "?" + url.Values{
		"_pragma": []string{
			"busy_timeout(30000)",
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
		},
	}.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS regmock_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return "", false, fmt.Errorf("state store is closed")
	}

	var value string
	row := s.db.QueryRow(`SELECT value FROM regmock_state WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load state key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("state store is closed")
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO regmock_state (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store state key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("state store is closed")
	}

	if _, err := s.db.Exec(`DELETE FROM regmock_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
