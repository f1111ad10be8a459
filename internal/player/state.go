package player

import (
	"sync"
	"time"

	"vlcpresence/pkg/models"
)

// State is the last presence handed to Discord, as seen from outside the loop
type State struct {
	Presence       *models.PresencePayload `json:"presence,omitempty"`
	Classification string                  `json:"classification,omitempty"`
	Connected      bool                    `json:"connected"`
	PlayerOnline   bool                    `json:"playerOnline"`
	LastError      string                  `json:"lastError,omitempty"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// StateManager mirrors loop progress for readers on other goroutines
type StateManager struct {
	state *State
	mutex sync.RWMutex
}

// NewStateManager creates an empty state manager
func NewStateManager() *StateManager {
	return &StateManager{
		state: &State{
			UpdatedAt: time.Now(),
		},
	}
}

// GetState returns a copy of the current state (thread-safe)
func (sm *StateManager) GetState() *State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	stateCopy := *sm.state
	if sm.state.Presence != nil {
		presence := *sm.state.Presence
		stateCopy.Presence = &presence
	}
	return &stateCopy
}

// Publish records a payload produced by the engine
func (sm *StateManager) Publish(class Classification, payload *models.PresencePayload) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.state.Presence = payload
	sm.state.Classification = class.String()
	sm.state.UpdatedAt = time.Now()
}

// UpdateConnection records whether the Discord connection is live
func (sm *StateManager) UpdateConnection(connected bool) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.state.Connected = connected
	sm.state.UpdatedAt = time.Now()
}

// UpdatePlayer records the outcome of the last poll; a nil error means VLC answered
func (sm *StateManager) UpdatePlayer(err error) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.state.PlayerOnline = err == nil
	sm.state.LastError = ""
	if err != nil {
		sm.state.LastError = err.Error()
	}
	sm.state.UpdatedAt = time.Now()
}
