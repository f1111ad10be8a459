package models

// PlaybackStatus is the player's transport state as reported by VLC
type PlaybackStatus string

const (
	StatusPlaying PlaybackStatus = "playing"
	StatusPaused  PlaybackStatus = "paused"
	StatusStopped PlaybackStatus = "stopped"
	StatusUnknown PlaybackStatus = "unknown"
)

// ParsePlaybackStatus maps a raw state string onto a known status
func ParsePlaybackStatus(raw string) PlaybackStatus {
	switch PlaybackStatus(raw) {
	case StatusPlaying, StatusPaused, StatusStopped:
		return PlaybackStatus(raw)
	default:
		return StatusUnknown
	}
}

// Placeholders used when the player omits a metadata field
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Artist"
	UnknownAlbum  = "Album"
)

// Metadata holds the tags of the current media item. Nil fields were absent.
type Metadata struct {
	Title    *string `json:"title,omitempty"`
	Artist   *string `json:"artist,omitempty"`
	Album    *string `json:"album,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Snapshot is one polled observation of player state
type Snapshot struct {
	Status   PlaybackStatus `json:"status"`
	Length   *int64         `json:"length,omitempty"`   // in seconds
	Position *float64       `json:"position,omitempty"` // 0.0 to 1.0
	Meta     Metadata       `json:"meta"`
}

// IsPlaying reports whether the clock of the current track is advancing
func (s *Snapshot) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// LengthSeconds returns the track length, 0 when unknown
func (s *Snapshot) LengthSeconds() int64 {
	if s.Length == nil || *s.Length < 0 {
		return 0
	}
	return *s.Length
}

// PositionFraction returns the normalized play position, 0 when unknown
func (s *Snapshot) PositionFraction() float64 {
	if s.Position == nil {
		return 0
	}
	return *s.Position
}

// Title returns the track title or its placeholder
func (s *Snapshot) Title() string {
	return orDefault(s.Meta.Title, UnknownTitle)
}

// Artist returns the track artist or its placeholder
func (s *Snapshot) Artist() string {
	return orDefault(s.Meta.Artist, UnknownArtist)
}

// Album returns the album name or its placeholder
func (s *Snapshot) Album() string {
	return orDefault(s.Meta.Album, UnknownAlbum)
}

// Filename returns the source filename, empty when absent
func (s *Snapshot) Filename() string {
	return orDefault(s.Meta.Filename, "")
}

func orDefault(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
