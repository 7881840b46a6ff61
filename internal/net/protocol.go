package net

import (
	"github.com/google/uuid"

	"github.com/peterkuimelis/novacana/internal/game"
)

// Message types for the JSON protocol over websocket and redis.
const (
	// server → client
	TypeStateUpdate = "state_update"
	TypeError       = "error"

	// client → server
	TypeJoin   = "join"
	TypeIntent = "intent"
)

// ServerMessage is the envelope for all server-to-client messages. A
// state_update carries the whole authoritative state; receivers replace their
// copy with it.
type ServerMessage struct {
	Type   string          `json:"type"`
	GameID uuid.UUID       `json:"game_id"`
	State  *game.GameState `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "intent"
	Intent *game.Intent `json:"intent,omitempty"`
}

// StateUpdate wraps a snapshot for broadcast.
func StateUpdate(id uuid.UUID, gs *game.GameState) ServerMessage {
	return ServerMessage{Type: TypeStateUpdate, GameID: id, State: gs}
}
