// Package mockmode owns the simulator toggle: a single boolean flag resolved
// from the process environment first, then the persistent state store. The
// rest of the application asks this package whether registration calls should
// be simulated instead of hitting the real provider.
package mockmode

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clearstonehq/regmock/internal/state"
)

const (
	// EnvVar overrides everything when set to exactly "true".
	EnvVar = "REGMOCK_MOCK_MODE"
	// StoreKey is the fixed key the flag lives under in the state store.
	StoreKey = "mock_mode"

	enabledLiteral = "true"
)

// Source identifies which precedence tier produced the enabled state.
type Source string

const (
	SourceEnv      Source = "env"
	SourceStore    Source = "local-store"
	SourceDisabled Source = "disabled"
)

// Status reports the resolved flag together with its source. Enabled and
// Source always agree: Source is "disabled" exactly when Enabled is false.
type Status struct {
	Enabled bool   `json:"enabled"`
	Source  Source `json:"source"`
}

// Config carries the controller's dependencies. Both sources are injected so
// the precedence logic stays testable in isolation.
type Config struct {
	// LookupEnv reads the environment tier. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Store is the persistence tier. May be nil, in which case Enable and
	// Disable silently no-op and resolution falls through to disabled.
	Store  state.Store
	Logger zerolog.Logger
}

// Controller resolves, toggles, and reports the mock-mode flag.
type Controller struct {
	lookupEnv func(string) (string, bool)
	store     state.Store
	logger    zerolog.Logger

	mu        sync.Mutex
	listeners []func(Status)
	last      Status
	haveLast  bool
}

func New(cfg Config) *Controller {
	lookup := cfg.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Controller{
		lookupEnv: lookup,
		store:     cfg.Store,
		logger:    cfg.Logger,
	}
}

// Status resolves the flag: environment first, then the store, else disabled.
// Truthy means exactly the string "true"; anything else, including "TRUE" or
// padded whitespace, counts as unset. Reads fresh on every call, no caching.
// No side effects.
func (c *Controller) Status() Status {
	if value, ok := c.lookupEnv(EnvVar); ok && value == enabledLiteral {
		return Status{Enabled: true, Source: SourceEnv}
	}

	if c.store != nil {
		value, ok, err := c.store.Get(StoreKey)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", StoreKey).Msg("mock mode state read failed; treating flag as unset")
		} else if ok && value == enabledLiteral {
			return Status{Enabled: true, Source: SourceStore}
		}
	}

	return Status{Enabled: false, Source: SourceDisabled}
}

// IsEnabled reports whether mock mode is on, using the same resolution as
// Status; the two can never disagree.
func (c *Controller) IsEnabled() bool {
	return c.Status().Enabled
}

// Enable persists the flag. Without a store this is a silent no-op. The
// environment tier still wins on reads either way.
func (c *Controller) Enable() {
	if c.store == nil {
		return
	}
	if err := c.store.Set(StoreKey, enabledLiteral); err != nil {
		c.logger.Warn().Err(err).Str("key", StoreKey).Msg("failed to persist mock mode flag")
		return
	}
	c.logger.Info().Msg("mock mode enabled")
	c.Refresh()
}

// Disable removes the flag from the store. Without a store this is a silent
// no-op.
func (c *Controller) Disable() {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(StoreKey); err != nil {
		c.logger.Warn().Err(err).Str("key", StoreKey).Msg("failed to clear mock mode flag")
		return
	}
	c.logger.Info().Msg("mock mode disabled")
	c.Refresh()
}

// OnChange registers a listener invoked whenever the resolved status changes.
// Listeners fire from whichever goroutine noticed the change, so they must be
// quick and safe to call concurrently.
func (c *Controller) OnChange(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Refresh re-resolves the flag and notifies listeners when the effective
// status moved since the last observation. The first call only records the
// baseline. Called after local toggles and by the store watcher when another
// process edits the flag.
func (c *Controller) Refresh() {
	status := c.Status()

	c.mu.Lock()
	if c.haveLast && status == c.last {
		c.mu.Unlock()
		return
	}
	first := !c.haveLast
	c.last = status
	c.haveLast = true
	listeners := append(([]func(Status))(nil), c.listeners...)
	c.mu.Unlock()

	if first {
		return
	}
	for _, fn := range listeners {
		fn(status)
	}
}

// LogStartup emits the one-time notice a service prints when it comes up
// with mock mode on, and records the baseline for change notifications.
func (c *Controller) LogStartup() {
	status := c.Status()
	if status.Enabled {
		c.logger.Info().Str("source", string(status.Source)).Msg("mock mode enabled at startup")
	}
	c.Refresh()
}
