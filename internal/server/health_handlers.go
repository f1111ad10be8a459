package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// HealthStatus represents operational status for the /health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Player    string            `json:"player"`
	Discord   string            `json:"discord"`
	Uptime    string            `json:"uptime"`
	Details   map[string]string `json:"details,omitempty"`
}

// handleHealthCheck reports whether VLC answers and Discord is connected.
func (ss *StatusServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	state := ss.state.GetState()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Player:    "ok",
		Discord:   "ok",
		Uptime:    time.Since(ss.started).Round(time.Second).String(),
		Details:   make(map[string]string),
	}

	if !state.PlayerOnline {
		health.Status = "unhealthy"
		health.Player = "unreachable"
		if state.LastError != "" {
			health.Details["player_error"] = state.LastError
		}
	}

	// Discord comes and goes with the desktop client; it only degrades health
	if !state.Connected {
		health.Discord = "disconnected"
		if health.Status == "healthy" {
			health.Status = "degraded"
		}
	}

	if health.Status == "unhealthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(health)
}

// handleGetPresence returns the last presence handed to Discord.
func (ss *StatusServer) handleGetPresence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ss.state.GetState())
}

// handleGetHistory lists recent plays when the journal is enabled.
func (ss *StatusServer) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if ss.history == nil {
		http.Error(w, "History is disabled", http.StatusNotFound)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := ss.history.Recent(limit)
	if err != nil {
		ss.logger.WithError(err).Error("Error retrieving history")
		http.Error(w, "Error retrieving history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
