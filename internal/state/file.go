package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/joho/godotenv"
)

// FileStore persists values in a dotenv-format file. The file is shared with
// the CLI, so every read goes to disk and writes are atomic renames; a watcher
// or a concurrent reader never observes a torn file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("state file path is required")
	}
	path = filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Path returns the backing file path, for callers that watch it for changes.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileStore) Close() error {
	return nil
}

// read loads the current file contents. A missing file is an empty store.
func (s *FileStore) read() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := []string{
		"# regmock state",
		"# Managed by 'regmock mock enable|disable'.",
		"",
	}
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", key, values[key]))
	}
	content := strings.Join(lines, "\n") + "\n"

	if err := renameio.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", s.path, err)
	}
	return nil
}
