package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var metricsShutdownTimeout = 5 * time.Second

// runMetricsServer serves the Prometheus endpoint on its own listener so
// scrapes never contend with simulated registrations (which sleep on
// purpose). Runs under the serve command's errgroup and drains when ctx is
// cancelled. Metrics are best-effort: a dead listener logs a warning but
// never takes the simulator down.
func runMetricsServer(ctx context.Context, g *errgroup.Group, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Metrics endpoint listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Msg("Metrics server stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shut down metrics server cleanly")
		}
		return nil
	})
}
