package net

import (
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/novacana/internal/game"
)

// Mirror is a receiver's copy of the host state. It never merges: every
// snapshot replaces the previous one wholesale.
type Mirror struct {
	mu      sync.Mutex
	gameID  uuid.UUID
	state   *game.GameState
	updates chan struct{}
}

func NewMirror() *Mirror {
	return &Mirror{
		state:   game.NewGameState(),
		updates: make(chan struct{}, 1),
	}
}

// Apply takes a server message. It reports whether the state was replaced.
func (m *Mirror) Apply(msg ServerMessage) bool {
	if msg.Type != TypeStateUpdate || msg.State == nil {
		return false
	}
	m.mu.Lock()
	m.gameID = msg.GameID
	m.state = msg.State
	m.mu.Unlock()

	select {
	case m.updates <- struct{}{}:
	default:
	}
	return true
}

// State returns the latest snapshot.
func (m *Mirror) State() *game.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mirror) GameID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameID
}

// Updates signals after each replacement. Signals coalesce.
func (m *Mirror) Updates() <-chan struct{} {
	return m.updates
}
