package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clearstonehq/regmock/internal/api"
	"github.com/clearstonehq/regmock/internal/config"
	"github.com/clearstonehq/regmock/internal/logging"
	"github.com/clearstonehq/regmock/internal/metrics"
	"github.com/clearstonehq/regmock/internal/mockmode"
	"github.com/clearstonehq/regmock/internal/state"
	"github.com/clearstonehq/regmock/internal/websocket"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var osExit = os.Exit

var envFile string

var rootCmd = &cobra.Command{
	Use:     "regmock",
	Short:   "regmock - Clearstone client-registration API simulator",
	Long:    `regmock stands in for the Clearstone client-registration (KYC) API so front-end teams can exercise the full registration flow without live write access.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the registration simulator",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("regmock %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer() {
	// Baseline logger for early startup messages
	logging.Init(logging.Config{
		Format:    "auto",
		Level:     "info",
		Component: "regmock",
	})

	cfg := config.Load(envFile)

	// Re-initialize logging with configuration-driven settings
	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "regmock",
		FilePath:  cfg.LogFile,
	})

	log.Info().Str("version", Version).Msg("Starting regmock registration simulator")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := state.Open(cfg.StoreBackend, state.Options{
		Path:     cfg.StateFilePath(),
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open state store")
	}
	defer store.Close()

	ctrl := mockmode.New(mockmode.Config{
		Store:  store,
		Logger: log.Logger,
	})

	wsHub := websocket.NewHub(func() any { return ctrl.Status() }, cfg.AllowedOrigins)
	go wsHub.Run()
	defer wsHub.Stop()

	ctrl.OnChange(func(status mockmode.Status) {
		metrics.RecordMockModeStatus(string(status.Source), status.Enabled)
		metrics.RecordMockModeToggle(status.Enabled)
		wsHub.BroadcastMockMode(status)
	})
	ctrl.LogStartup()

	startup := ctrl.Status()
	metrics.RecordMockModeStatus(string(startup.Source), startup.Enabled)

	// Picks up toggles made by other processes, e.g. the mock subcommands.
	watcher := mockmode.NewWatcher(ctrl, log.Logger)
	watcher.Start()
	defer watcher.Stop()

	router := api.NewRouter(cfg, ctrl, wsHub, api.VersionInfo{
		Version: Version,
		Build:   BuildTime,
		Commit:  GitCommit,
	})

	// ReadHeaderTimeout instead of ReadTimeout: a connection deadline would
	// outlive the WebSocket upgrade and kill the status stream.
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// SIGHUP re-resolves the flag without a restart
	reloadChan := make(chan os.Signal, 1)
	signal.Notify(reloadChan, syscall.SIGHUP)
	defer signal.Stop(reloadChan)

	g, ctx := errgroup.WithContext(ctx)

	if addr := cfg.MetricsAddr(); addr != "" {
		runMetricsServer(ctx, g, addr)
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-reloadChan:
				log.Info().Msg("Received SIGHUP, re-resolving mock mode")
				ctrl.Refresh()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server stopped")
}
