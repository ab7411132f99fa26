// Package state persists small key/value settings that must survive process
// restarts, such as the mock-mode flag. Backends share a single contract:
// missing keys are reported via the ok bool, never as an error.
package state

import (
	"fmt"
	"strings"
)

// Store is a minimal persistent key/value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}

// Options carries backend-specific settings for Open.
type Options struct {
	Path     string // file backend: state file path; sqlite backend: database directory
	RedisURL string // redis backend: connection URL (redis://[:password@]host:port/db)
}

// Open creates a Store for the configured backend. An empty backend selects
// the file store.
func Open(backend string, opts Options) (Store, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = "file"
	}

	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(opts.Path)
	case "sqlite":
		return NewSQLiteStore(opts.Path)
	case "redis":
		return NewRedisStore(opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown state backend: %s", backend)
	}
}
