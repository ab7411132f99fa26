package state

import (
	"path/filepath"
	"testing"
)

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set("mock_mode", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := s.Get("mock_mode")
	if err != nil {
		t.Fatalf("Get after Set: %v", err)
	}
	if !ok || value != "true" {
		t.Fatalf("Get after Set = (%q, %v), want (true, true)", value, ok)
	}

	if err := s.Set("mock_mode", "false"); err != nil {
		t.Fatalf("overwrite Set: %v", err)
	}
	if value, _, _ := s.Get("mock_mode"); value != "false" {
		t.Fatalf("Get after overwrite = %q, want false", value)
	}

	if err := s.Delete("mock_mode"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("mock_mode"); ok {
		t.Fatal("key still present after Delete")
	}

	// Deleting an absent key is a no-op, not an error.
	if err := s.Delete("mock_mode"); err != nil {
		t.Fatalf("Delete absent key: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreContract(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state.env"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStoreContract(t *testing.T) {
	s, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		opts    Options
		wantErr bool
	}{
		{name: "memory", backend: "memory"},
		{name: "file", backend: "file", opts: Options{Path: filepath.Join(dir, "state.env")}},
		{name: "empty defaults to file", backend: "", opts: Options{Path: filepath.Join(dir, "default.env")}},
		{name: "backend is case insensitive", backend: "  MEMORY ", opts: Options{}},
		{name: "sqlite", backend: "sqlite", opts: Options{Path: dir}},
		{name: "unknown backend", backend: "etcd", wantErr: true},
		{name: "file requires path", backend: "file", wantErr: true},
		{name: "redis requires URL", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.backend, tt.opts)
			if tt.wantErr {
				if err == nil {
					s.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.backend, err)
			}
			s.Close()
		})
	}
}
