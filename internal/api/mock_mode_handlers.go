package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (r *Router) handleGetMockMode(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(r.mock.Status()); err != nil {
		log.Error().Err(err).Msg("Failed to encode mock mode status")
	}
}

type mockModeRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r *Router) handleUpdateMockMode(w http.ResponseWriter, req *http.Request) {
	// Limit request body to 16KB to prevent memory exhaustion
	req.Body = http.MaxBytesReader(w, req.Body, 16*1024)

	var body mockModeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		log.Error().Err(err).Msg("Failed to decode mock mode request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Enabled == nil {
		http.Error(w, "enabled field is required", http.StatusBadRequest)
		return
	}

	if *body.Enabled {
		r.mock.Enable()
	} else {
		r.mock.Disable()
	}

	// Respond with the freshly resolved status. An environment override means
	// the effective state may differ from what was just persisted.
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(r.mock.Status()); err != nil {
		log.Error().Err(err).Msg("Failed to encode mock mode response")
	}
}
