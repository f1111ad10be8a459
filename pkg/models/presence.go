package models

import "time"

// Timestamps is an absolute start/end pair in milliseconds since the epoch
type Timestamps struct {
	StartMs int64 `json:"start"`
	EndMs   int64 `json:"end"`
}

// Start returns the start timestamp as a time.Time
func (t Timestamps) Start() time.Time {
	return time.UnixMilli(t.StartMs)
}

// End returns the end timestamp as a time.Time
func (t Timestamps) End() time.Time {
	return time.UnixMilli(t.EndMs)
}

// Button is a clickable link attached to the presence
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PresencePayload is what gets shown on the presence display
type PresencePayload struct {
	Details    string      `json:"details"` // "artist - title"
	State      string      `json:"state"`   // album line
	LargeImage string      `json:"largeImage"`
	LargeText  string      `json:"largeText"`
	SmallImage string      `json:"smallImage,omitempty"` // empty means no small image
	SmallText  string      `json:"smallText,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"` // only while playing
	Button     *Button     `json:"button,omitempty"`
}

// HasSmallImage reports whether a small image may be attached
func (p *PresencePayload) HasSmallImage() bool {
	return p.SmallImage != ""
}
