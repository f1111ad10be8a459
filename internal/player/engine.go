package player

import (
	"fmt"
	"math"
	"time"

	"vlcpresence/internal/catalog"
	"vlcpresence/pkg/models"
)

// DefaultDriftTolerance is how far the observed position may stray from the
// anchored one before it counts as a seek. Anchors are kept in milliseconds.
const DefaultDriftTolerance = 1000 * time.Millisecond

// Texts shown alongside the album art
const (
	PausedText     = "Paused"
	SmallImageText = "From Minecraft"
	WikiButtonText = "View on Minecraft Wiki"
)

// Classification describes what a reconciliation found
type Classification int

const (
	NoSignificantChange Classification = iota
	TrackChanged
	SeekDetected
	PlayStateChanged
)

func (c Classification) String() string {
	switch c {
	case TrackChanged:
		return "track_changed"
	case SeekDetected:
		return "seek_detected"
	case PlayStateChanged:
		return "play_state_changed"
	default:
		return "no_significant_change"
	}
}

// Anchor is the engine's belief about the current track: had it played
// uninterrupted, it started at StartMs and finishes at EndMs.
type Anchor struct {
	ActiveFile string
	IsPlaying  bool
	StartMs    int64
	EndMs      int64
}

// Options tune the engine
type Options struct {
	DriftTolerance time.Duration
}

// Engine turns successive snapshots into presence updates. It is not safe for
// concurrent use; the poll loop owns it.
type Engine struct {
	anchor         Anchor
	driftTolerance float64 // ms
}

// NewEngine creates an engine with an empty anchor
func NewEngine(opts Options) *Engine {
	e := &Engine{}
	e.SetDriftTolerance(opts.DriftTolerance)
	return e
}

// SetDriftTolerance changes the seek threshold. Non-positive values restore
// the default.
func (e *Engine) SetDriftTolerance(d time.Duration) {
	if d <= 0 {
		d = DefaultDriftTolerance
	}
	e.driftTolerance = float64(d.Milliseconds())
}

// DriftTolerance returns the current seek threshold
func (e *Engine) DriftTolerance() time.Duration {
	return time.Duration(e.driftTolerance) * time.Millisecond
}

// Reset forgets the tracked file so the next snapshot is treated as new
func (e *Engine) Reset() {
	e.anchor = Anchor{}
}

// Reconcile folds snap, observed at nowMs, into the anchor and returns the
// payload to publish, or nil when the display is already up to date.
func (e *Engine) Reconcile(snap *models.Snapshot, nowMs int64) (Classification, *models.PresencePayload) {
	filename := snap.Filename()
	playing := snap.IsPlaying()
	lengthMs := snap.LengthSeconds() * 1000

	trackChanged := filename != e.anchor.ActiveFile

	// VLC's "time" field only has whole-second precision, position does not
	observedMs := snap.PositionFraction() * float64(lengthMs)
	expectedMs := float64(nowMs - e.anchor.StartMs)
	seekDelta := observedMs - expectedMs

	var class Classification
	switch {
	case trackChanged:
		class = TrackChanged
		e.anchor.ActiveFile = filename
		e.anchor.StartMs = nowMs
		e.anchor.EndMs = nowMs + lengthMs

	case playing && math.Abs(seekDelta) > e.driftTolerance:
		// Seeking forward means the track started earlier, so both ends move back
		class = SeekDetected
		shift := int64(math.Round(seekDelta))
		e.anchor.StartMs -= shift
		e.anchor.EndMs -= shift

	case playing == e.anchor.IsPlaying:
		return NoSignificantChange, nil

	default:
		class = PlayStateChanged
	}

	e.anchor.IsPlaying = playing

	return class, e.buildPayload(snap, playing)
}

func (e *Engine) buildPayload(snap *models.Snapshot, playing bool) *models.PresencePayload {
	album := snap.Album()
	large, small := catalog.Assets(album)

	payload := &models.PresencePayload{
		Details:    fmt.Sprintf("%s - %s", snap.Artist(), snap.Title()),
		State:      catalog.AlbumLabel(album),
		LargeImage: large,
		LargeText:  PausedText,
	}

	if small != catalog.NoImage {
		payload.SmallImage = small
		payload.SmallText = SmallImageText
	}

	if url, ok := catalog.WikiURL(album); ok {
		payload.Button = &models.Button{Label: WikiButtonText, URL: url}
	}

	if playing {
		payload.LargeText = catalog.CategoryLabel(snap.Filename())
		payload.Timestamps = &models.Timestamps{
			StartMs: e.anchor.StartMs,
			EndMs:   e.anchor.EndMs,
		}
	}

	return payload
}
