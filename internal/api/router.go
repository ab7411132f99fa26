// Package api exposes the simulator over HTTP: health and version probes,
// the mock-mode toggle, the simulated registration endpoint, and the
// WebSocket status stream.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clearstonehq/regmock/internal/config"
	"github.com/clearstonehq/regmock/internal/mockmode"
	"github.com/clearstonehq/regmock/internal/websocket"
)

// VersionInfo describes the running binary for /api/version.
type VersionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit,omitempty"`
	Runtime string `json:"runtime"`
}

// Router handles HTTP routing
type Router struct {
	mux       *http.ServeMux
	cfg       *config.Config
	mock      mockmode.Debug
	wsHub     *websocket.Hub
	version   VersionInfo
	startTime time.Time
}

// NewRouter creates a new router instance. The mock-mode endpoints operate on
// the controller's debug surface. wsHub may be nil, in which case the /ws
// endpoint is not mounted.
func NewRouter(cfg *config.Config, ctrl mockmode.Debug, wsHub *websocket.Hub, version VersionInfo) *Router {
	if version.Runtime == "" {
		version.Runtime = "go"
	}
	r := &Router{
		mux:       http.NewServeMux(),
		cfg:       cfg,
		mock:      ctrl,
		wsHub:     wsHub,
		version:   version,
		startTime: time.Now(),
	}

	r.setupRoutes()
	return r
}

// setupRoutes configures all routes
func (r *Router) setupRoutes() {
	r.mux.HandleFunc("/api/health", r.handleHealth)
	r.mux.HandleFunc("/api/version", r.handleVersion)

	r.mux.HandleFunc("/api/system/mock-mode", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			r.handleGetMockMode(w, req)
		case http.MethodPost:
			r.handleUpdateMockMode(w, req)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	r.mux.HandleFunc("/api/v1/clients/register", r.handleRegisterClient)

	if r.wsHub != nil {
		r.mux.HandleFunc("/ws", r.handleWebSocket)
	}
}

// Handler wraps the router in the shared error, request-ID, and metrics
// middleware. This is what the HTTP server should serve.
func (r *Router) Handler() http.Handler {
	return ErrorHandler(r)
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Add CORS headers if configured
	if r.cfg.AllowedOrigins != "" {
		w.Header().Set("Access-Control-Allow-Origin", r.cfg.AllowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	}

	// Handle preflight requests
	if req.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.HasPrefix(req.URL.Path, "/api/") || strings.HasPrefix(req.URL.Path, "/ws") {
		addSecurityHeaders(w)
	}

	start := time.Now()
	r.mux.ServeHTTP(w, req)
	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
}

// addSecurityHeaders adds security headers to the response
func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	// API-only service; nothing is loaded from here.
	w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// handleHealth handles health check requests
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"uptime":    time.Since(r.startTime).Seconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleVersion handles version requests
func (r *Router) handleVersion(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(r.version)
}

// handleWebSocket hands the connection to the status hub.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	r.wsHub.HandleWebSocket(w, req)
}
