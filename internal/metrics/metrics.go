// Package metrics exposes Prometheus instrumentation for the simulator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MockModeEnabled is 1 for the source tier currently enabling mock
	// mode, 0 for the others.
	MockModeEnabled = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "regmock_mock_mode_enabled",
			Help: "Whether mock mode is enabled, by resolving source",
		},
		[]string{"source"},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "regmock_registrations_total",
			Help: "Total number of simulated client registrations",
		},
	)

	RegistrationsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "regmock_registrations_rejected_total",
			Help: "Total number of registration calls rejected because mock mode was disabled",
		},
	)

	SimulatedDelaySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "regmock_simulated_delay_seconds",
			Help:    "Artificial latency injected into simulated registrations",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 3, 5},
		},
	)

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "regmock_websocket_clients",
			Help: "Number of connected WebSocket status subscribers",
		},
	)

	MockModeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regmock_mock_mode_toggles_total",
			Help: "Total number of observed mock mode transitions",
		},
		[]string{"enabled"},
	)
)

var statusSources = []string{"env", "local-store", "disabled"}

// RecordMockModeStatus points the enabled gauge at the active source.
func RecordMockModeStatus(source string, enabled bool) {
	for _, s := range statusSources {
		value := 0.0
		if s == source && enabled {
			value = 1.0
		}
		MockModeEnabled.WithLabelValues(s).Set(value)
	}
}

// RecordMockModeToggle counts an observed transition.
func RecordMockModeToggle(enabled bool) {
	label := "false"
	if enabled {
		label = "true"
	}
	MockModeTogglesTotal.WithLabelValues(label).Inc()
}

// RecordRegistration counts a simulated registration and its injected delay.
func RecordRegistration(delay time.Duration) {
	RegistrationsTotal.Inc()
	SimulatedDelaySeconds.Observe(delay.Seconds())
}

// RecordRegistrationRejected counts a call that arrived while the simulator
// was disabled.
func RecordRegistrationRejected() {
	RegistrationsRejectedTotal.Inc()
}
