package mockmode

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/clearstonehq/regmock/internal/state"
)

func TestWatcherSeesFileStoreChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "state.env")
	serverStore, err := state.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer serverStore.Close()

	ctrl := New(Config{
		LookupEnv: func(string) (string, bool) { return "", false },
		Store:     serverStore,
		Logger:    zerolog.Nop(),
	})

	fired := make(chan Status, 4)
	ctrl.OnChange(func(s Status) { fired <- s })
	ctrl.Refresh()

	w := NewWatcher(ctrl, zerolog.Nop())
	w.Start()
	defer w.Stop()

	// Simulate the CLI toggling the flag from another process.
	cliStore, err := state.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer cliStore.Close()
	if err := cliStore.Set(StoreKey, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case got := <-fired:
		if got != (Status{Enabled: true, Source: SourceStore}) {
			t.Fatalf("notification = %+v", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the external change")
	}
}

func TestWatcherStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := New(Config{
		LookupEnv: func(string) (string, bool) { return "", false },
		Store:     state.NewMemoryStore(),
		Logger:    zerolog.Nop(),
	})

	// Memory stores have no file to watch, so this takes the polling path.
	w := NewWatcher(ctrl, zerolog.Nop())
	w.Start()
	w.Stop()

	// Stop is idempotent.
	w.Stop()
}
