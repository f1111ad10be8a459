package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vlcpresence/internal/config"
	"vlcpresence/internal/history"
	"vlcpresence/internal/player"
	"vlcpresence/pkg/models"

	"github.com/sirupsen/logrus"
)

type fakeHistory struct {
	entries []history.Entry
	err     error
	limit   int
}

func (f *fakeHistory) Recent(limit int) ([]history.Entry, error) {
	f.limit = limit
	return f.entries, f.err
}

func createTestStatusServer(hist HistoryReader) (*StatusServer, *player.StateManager) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests

	cfg := config.DefaultConfig().Status
	state := player.NewStateManager()
	return NewStatusServer(&cfg, state, hist, logger), state
}

func TestStatusServerTimeouts(t *testing.T) {
	ss, _ := createTestStatusServer(nil)

	if ss.server.ReadTimeout <= 0 || ss.server.WriteTimeout <= 0 || ss.server.IdleTimeout <= 0 {
		t.Errorf("Expected bounded timeouts, got read=%s write=%s idle=%s",
			ss.server.ReadTimeout, ss.server.WriteTimeout, ss.server.IdleTimeout)
	}
}

func TestHandleHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		playerErr  error
		connected  bool
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, true, http.StatusOK, "healthy"},
		{"discord down", nil, false, http.StatusOK, "degraded"},
		{"vlc down", errors.New("connection refused"), true, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, state := createTestStatusServer(nil)
			state.UpdatePlayer(tt.playerErr)
			state.UpdateConnection(tt.connected)

			rec := httptest.NewRecorder()
			ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("Expected status code %d, got %d", tt.wantCode, rec.Code)
			}

			var health HealthStatus
			if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
				t.Fatalf("Failed to decode health: %v", err)
			}
			if health.Status != tt.wantStatus {
				t.Errorf("Expected %s, got %s", tt.wantStatus, health.Status)
			}
			if tt.playerErr != nil && health.Details["player_error"] != tt.playerErr.Error() {
				t.Errorf("Expected player error detail, got %v", health.Details)
			}
		})
	}
}

func TestHandleGetPresence(t *testing.T) {
	ss, state := createTestStatusServer(nil)
	state.Publish(player.TrackChanged, &models.PresencePayload{
		Details:    "C418 - Sweden",
		State:      "Minecraft - Volume Alpha",
		Timestamps: &models.Timestamps{StartMs: 1, EndMs: 2},
	})

	rec := httptest.NewRecorder()
	ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/presence", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var got player.State
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if got.Presence == nil || got.Presence.Details != "C418 - Sweden" || got.Presence.Timestamps.EndMs != 2 {
		t.Errorf("Unexpected presence: %+v", got.Presence)
	}

	rec = httptest.NewRecorder()
	ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/presence", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for POST, got %d", rec.Code)
	}
}

func TestHandleGetHistory(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		ss, _ := createTestStatusServer(nil)
		rec := httptest.NewRecorder()
		ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})

	t.Run("Lists", func(t *testing.T) {
		hist := &fakeHistory{entries: []history.Entry{
			{ID: 1, Filename: "sweden.ogg", StartedAt: time.Now()},
		}}
		ss, _ := createTestStatusServer(hist)

		rec := httptest.NewRecorder()
		ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if hist.limit != 5 {
			t.Errorf("Expected limit 5, got %d", hist.limit)
		}

		var entries []history.Entry
		if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
			t.Fatalf("Failed to decode history: %v", err)
		}
		if len(entries) != 1 || entries[0].Filename != "sweden.ogg" {
			t.Errorf("Unexpected entries: %+v", entries)
		}
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		ss, _ := createTestStatusServer(&fakeHistory{})
		for _, limit := range []string{"0", "-1", "abc", "501"} {
			rec := httptest.NewRecorder()
			ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit="+limit, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("limit=%s: expected 400, got %d", limit, rec.Code)
			}
		}
	})

	t.Run("StoreError", func(t *testing.T) {
		ss, _ := createTestStatusServer(&fakeHistory{err: errors.New("database is locked")})
		rec := httptest.NewRecorder()
		ss.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rec.Code)
		}
	})
}
