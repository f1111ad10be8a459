package poller

import (
	"context"
	"time"

	"vlcpresence/internal/catalog"
	"vlcpresence/internal/config"
	"vlcpresence/internal/player"
	"vlcpresence/pkg/models"

	"github.com/sirupsen/logrus"
)

// SnapshotSource produces the current player snapshot
type SnapshotSource interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// PresenceSink displays presence payloads
type PresenceSink interface {
	SetPresence(payload *models.PresencePayload) error
	IsConnected() bool
	Connect() error
	Disconnect()
}

// Recorder journals track changes
type Recorder interface {
	Record(snap *models.Snapshot, category string, startedAt time.Time) (int64, error)
}

// Loop ties the snapshot source, the engine and the presence sink together
type Loop struct {
	source   SnapshotSource
	sink     PresenceSink
	engine   *player.Engine
	state    *player.StateManager
	recorder Recorder
	pending  *models.PresencePayload // last payload the sink did not accept
	reloads  <-chan *config.Config
	interval time.Duration
	now      func() time.Time
	logger   *logrus.Logger
}

// Option customizes a Loop
type Option func(*Loop)

// WithRecorder journals every track change to r
func WithRecorder(r Recorder) Option {
	return func(l *Loop) { l.recorder = r }
}

// WithStateManager mirrors published payloads into sm
func WithStateManager(sm *player.StateManager) Option {
	return func(l *Loop) { l.state = sm }
}

// WithReloads applies poll settings from configurations received on ch
func WithReloads(ch <-chan *config.Config) Option {
	return func(l *Loop) { l.reloads = ch }
}

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// New creates a poll loop using the poll settings from cfg
func New(cfg *config.PollConfig, source SnapshotSource, sink PresenceSink, logger *logrus.Logger, opts ...Option) *Loop {
	engine := player.NewEngine(player.Options{
		DriftTolerance: time.Duration(cfg.DriftToleranceMs) * time.Millisecond,
	})

	l := &Loop{
		source:   source,
		sink:     sink,
		engine:   engine,
		state:    player.NewStateManager(),
		interval: time.Duration(cfg.IntervalMs) * time.Millisecond,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the state manager the loop publishes to
func (l *Loop) State() *player.StateManager {
	return l.state
}

// Run polls until ctx is cancelled, then disconnects the sink
func (l *Loop) Run(ctx context.Context) error {
	defer l.sink.Disconnect()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.WithFields(logrus.Fields{
		"interval":        l.interval,
		"drift_tolerance": l.engine.DriftTolerance(),
	}).Info("Poll loop started")

	l.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Poll loop stopped")
			return ctx.Err()

		case cfg := <-l.reloads:
			l.applyConfig(cfg, ticker)

		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

func (l *Loop) applyConfig(cfg *config.Config, ticker *time.Ticker) {
	l.engine.SetDriftTolerance(time.Duration(cfg.Poll.DriftToleranceMs) * time.Millisecond)

	interval := time.Duration(cfg.Poll.IntervalMs) * time.Millisecond
	if interval != l.interval {
		l.interval = interval
		ticker.Reset(interval)
	}

	l.logger.WithFields(logrus.Fields{
		"interval":        l.interval,
		"drift_tolerance": l.engine.DriftTolerance(),
	}).Info("Applied poll settings")
}

// Tick runs a single fetch, reconcile, deliver cycle
func (l *Loop) Tick(ctx context.Context) {
	snap, err := l.source.Fetch(ctx)
	l.state.UpdatePlayer(err)
	if err != nil {
		l.logger.WithError(err).Warn("Error querying VLC")
		return
	}

	now := l.now()
	class, payload := l.engine.Reconcile(snap, now.UnixMilli())
	if payload != nil {
		l.logger.WithFields(logrus.Fields{
			"classification": class.String(),
			"details":        payload.Details,
			"state":          payload.State,
		}).Debug("Presence update warranted")

		if class == player.TrackChanged {
			l.record(snap, now)
		}

		l.state.Publish(class, payload)
		l.pending = payload
	}

	if l.pending == nil {
		return
	}
	if l.deliver(l.pending) {
		l.pending = nil
	}
}

func (l *Loop) record(snap *models.Snapshot, now time.Time) {
	// Stopping VLC clears the filename; that is not a play
	if l.recorder == nil || snap.Filename() == "" {
		return
	}
	if _, err := l.recorder.Record(snap, catalog.CategoryLabel(snap.Filename()), now); err != nil {
		l.logger.WithError(err).Warn("Failed to record play history")
	}
}

// deliver hands payload to the sink, reconnecting once if the connection
// dropped. It reports whether the sink accepted the payload.
func (l *Loop) deliver(payload *models.PresencePayload) bool {
	defer func() { l.state.UpdateConnection(l.sink.IsConnected()) }()

	if !l.sink.IsConnected() {
		if err := l.sink.Connect(); err != nil {
			l.logger.WithError(err).Warn("Discord RPC unavailable, will retry next tick")
			return false
		}
	}

	if err := l.sink.SetPresence(payload); err != nil {
		l.logger.WithError(err).Warn("Failed to update Discord presence")
		return false
	}
	return true
}
