package api

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registered lazily on first use so importing the package never touches the
// default registry by itself.
var (
	httpMetricsOnce sync.Once

	apiRequestDuration *prometheus.HistogramVec
	apiRequestTotal    *prometheus.CounterVec
	apiRequestErrors   *prometheus.CounterVec
)

func initHTTPMetrics() {
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "regmock",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration observed at the API layer.",
			// Registration calls sleep for the simulated delay, so the
			// buckets bracket the default 0.5-1.5s window.
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 1.5, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	apiRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regmock",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the API.",
		},
		[]string{"method", "route", "status"},
	)

	apiRequestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regmock",
			Subsystem: "http",
			Name:      "request_errors_total",
			Help:      "Total number of HTTP errors surfaced to clients.",
		},
		[]string{"method", "route", "status_class"},
	)

	prometheus.MustRegister(apiRequestDuration, apiRequestTotal, apiRequestErrors)
}

func recordAPIRequest(method, route string, status int, elapsed time.Duration) {
	httpMetricsOnce.Do(initHTTPMetrics)

	code := strconv.Itoa(status)
	apiRequestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	apiRequestTotal.WithLabelValues(method, route, code).Inc()

	if class := classifyStatus(status); class != "none" {
		apiRequestErrors.WithLabelValues(method, route, class).Inc()
	}
}

func classifyStatus(status int) string {
	if status >= 500 {
		return "server_error"
	}
	if status >= 400 {
		return "client_error"
	}
	return "none"
}

// Routes the simulator actually serves keep their own label. Anything else
// is collapsed segment by segment so probes and generated IDs cannot blow up
// label cardinality.
var fixedRoutes = map[string]struct{}{
	"/api/health":              {},
	"/api/version":             {},
	"/api/system/mock-mode":    {},
	"/api/v1/clients/register": {},
	"/ws":                      {},
}

const maxRouteSegments = 5

func normalizeRoute(path string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if _, ok := fixedRoutes[path]; ok {
		return path
	}

	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return "/"
	}
	if len(segments) > maxRouteSegments {
		segments = segments[:maxRouteSegments]
	}
	for i, seg := range segments {
		segments[i] = normalizeSegment(seg)
	}
	return "/" + strings.Join(segments, "/")
}

func normalizeSegment(seg string) string {
	switch {
	case isDigits(seg):
		return ":id"
	case strings.HasPrefix(seg, "mock-"):
		return ":client"
	case len(seg) > 32:
		return ":token"
	default:
		return seg
	}
}

func isDigits(seg string) bool {
	if seg == "" {
		return false
	}
	return strings.IndexFunc(seg, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
