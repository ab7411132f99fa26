package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clearstonehq/regmock/internal/logging"
)

// APIError is the JSON error envelope returned by every failing endpoint.
type APIError struct {
	ErrorMessage string            `json:"error"`
	Code         string            `json:"code,omitempty"`
	StatusCode   int               `json:"status_code"`
	Timestamp    int64             `json:"timestamp"`
	RequestID    string            `json:"request_id,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
}

// Error returns the client-facing message.
func (e *APIError) Error() string {
	return e.ErrorMessage
}

// ErrorHandler wraps the router with the plumbing every API call gets: a
// request ID, status capture for logging and metrics, and panic recovery that
// turns handler crashes into structured 500 responses.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ServeMux redirects "" to "./"; normalize before it gets the chance.
		if r.URL.Path == "" {
			r.URL.Path = "/"
		}

		// Upgrade requests need the raw ResponseWriter. Once the connection
		// is hijacked the wrapper could neither capture a status nor write an
		// error body, so the socket endpoint handles its own failures.
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, requestID := logging.WithRequestID(r.Context(), strings.TrimSpace(r.Header.Get("X-Request-ID")))
		r = r.WithContext(ctx)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		rw.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		route := normalizeRoute(r.URL.Path)

		defer func() {
			recordAPIRequest(r.Method, route, rw.StatusCode(), time.Since(start))
		}()

		// Recovery runs before the metrics defer above, so a recovered panic
		// is recorded as a 500 rather than whatever was captured last.
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("error", rec).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("request_id", requestID).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered in API handler")

				writeErrorResponse(rw, http.StatusInternalServerError, "internal_error",
					"An unexpected error occurred", nil)
			}
		}()

		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			log.Warn().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Int("status", rw.statusCode).
				Str("request_id", requestID).
				Msg("Request failed")
		}
	})
}

// writeErrorResponse renders the error envelope shared by every handler.
func writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(APIError{
		ErrorMessage: message,
		Code:         code,
		StatusCode:   statusCode,
		Timestamp:    time.Now().Unix(),
		Details:      details,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to encode error response")
	}
}

// responseWriter records the first status code written so the middleware can
// log and label metrics after the handler returns.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.written {
		return
	}
	rw.statusCode = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) StatusCode() int {
	if rw == nil {
		return http.StatusInternalServerError
	}
	return rw.statusCode
}

// Hijack exposes the underlying connection for WebSocket upgrades.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying ResponseWriter does not support hijacking")
	}
	return h.Hijack()
}

// Flush forwards to the underlying writer when it supports flushing.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
