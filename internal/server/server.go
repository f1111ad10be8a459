package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vlcpresence/internal/config"
	"vlcpresence/internal/history"
	"vlcpresence/internal/player"

	"github.com/sirupsen/logrus"
)

// HistoryReader lists recent plays
type HistoryReader interface {
	Recent(limit int) ([]history.Entry, error)
}

// StatusServer exposes the loop's view of VLC and Discord over local HTTP
type StatusServer struct {
	config  *config.StatusConfig
	state   *player.StateManager
	history HistoryReader
	logger  *logrus.Logger
	server  *http.Server
	started time.Time
}

// NewStatusServer creates a status server; history may be nil
func NewStatusServer(cfg *config.StatusConfig, state *player.StateManager, hist HistoryReader, logger *logrus.Logger) *StatusServer {
	ss := &StatusServer{
		config:  cfg,
		state:   state,
		history: hist,
		logger:  logger,
		started: time.Now(),
	}

	ss.server = &http.Server{
		Addr:         cfg.Host + ":" + cfg.Port,
		Handler:      ss.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return ss
}

func (ss *StatusServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", ss.handleHealthCheck)
	mux.HandleFunc("/api/presence", ss.handleGetPresence)
	mux.HandleFunc("/api/history", ss.handleGetHistory)
	return mux
}

// Start serves until Shutdown is called
func (ss *StatusServer) Start() error {
	ss.logger.WithField("address", ss.server.Addr).Info("Status server starting")

	if err := ss.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests
func (ss *StatusServer) Shutdown(ctx context.Context) error {
	return ss.server.Shutdown(ctx)
}
