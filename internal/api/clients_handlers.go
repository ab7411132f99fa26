package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clearstonehq/regmock/internal/metrics"
	"github.com/clearstonehq/regmock/internal/mock"
)

// handleRegisterClient simulates the provider's client-registration call.
// The endpoint only exists to stand in for the real API, so it refuses to
// answer while mock mode is off rather than silently returning fake data.
func (r *Router) handleRegisterClient(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !r.mock.IsEnabled() {
		metrics.RecordRegistrationRejected()
		writeErrorResponse(w, http.StatusServiceUnavailable, "mock_mode_disabled",
			"Mock mode is disabled; registrations are not simulated", map[string]string{
				"hint": "run 'regmock mock enable' or set REGMOCK_MOCK_MODE=true",
			})
		return
	}

	// Limit request body to 16KB to prevent memory exhaustion
	req.Body = http.MaxBytesReader(w, req.Body, 16*1024)

	var reg mock.RegistrationRequest
	if err := json.NewDecoder(req.Body).Decode(&reg); err != nil {
		log.Error().Err(err).Msg("Failed to decode registration request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Field values pass through unvalidated, like the live API's sandbox.
	start := time.Now()
	mock.Delay(r.cfg.DelayMin, r.cfg.DelayMax)
	elapsed := time.Since(start)

	resp := mock.NewClientResponse(reg, r.cfg.KYCBaseURL)
	metrics.RecordRegistration(elapsed)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode registration response")
	}
}
