package api

import "testing"

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"500 internal server error", 500, "server_error"},
		{"503 service unavailable", 503, "server_error"},
		{"400 bad request", 400, "client_error"},
		{"404 not found", 404, "client_error"},
		{"405 method not allowed", 405, "client_error"},
		{"499 boundary", 499, "client_error"},
		{"200 OK", 200, "none"},
		{"101 switching protocols", 101, "none"},
		{"302 found", 302, "none"},
		{"399 boundary below client error", 399, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.want {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestNormalizeSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"numeric id", "123", ":id"},
		{"large number", "9999999999", ":id"},
		{"client id", "mock-1755734400000-A1B2C3", ":client"},
		{"client prefix alone", "mock-x", ":client"},
		{"33 char string", "abcdefghijklmnopqrstuvwxyz1234567", ":token"},
		{"plain segment", "clients", "clients"},
		{"version segment", "v1", "v1"},
		{"exactly 32 chars", "abcdefghijklmnopqrstuvwxyz123456", "abcdefghijklmnopqrstuvwxyz123456"},
		{"empty string", "", ""},
		{"mixed alphanumeric short", "user123", "user123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeSegment(tt.input); got != tt.want {
				t.Errorf("normalizeSegment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", "/"},
		{"root path", "/", "/"},
		{"health", "/api/health", "/api/health"},
		{"mock mode", "/api/system/mock-mode", "/api/system/mock-mode"},
		{"register", "/api/v1/clients/register", "/api/v1/clients/register"},
		{"client lookup", "/api/v1/clients/mock-1755734400000-A1B2C3", "/api/v1/clients/:client"},
		{"numeric tail", "/api/v1/clients/12345", "/api/v1/clients/:id"},
		{"query stripped", "/api/health?verbose=1", "/api/health"},
		{"six segments truncated", "/a/b/c/d/e/f", "/a/b/c/d/e"},
		{"double slashes collapsed", "/api//health", "/api/health"},
		{"trailing slash", "/api/health/", "/api/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeRoute(tt.input); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
