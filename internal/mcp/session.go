package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/game"
	novanet "github.com/peterkuimelis/novacana/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string     `json:"game_id"`
	Accepted bool       `json:"accepted"`
	Log      []string   `json:"log"` // lines added since the previous response
	State    *StateView `json:"state"`
	GameOver bool       `json:"game_over"`
	Winner   int        `json:"winner,omitempty"`
	Result   string     `json:"result,omitempty"`
}

// GameSession is one hot-seat game driven through tools. Chains resolve
// inline, so every response shows a settled state.
type GameSession struct {
	session *novanet.Session

	mu      sync.Mutex
	logSeen int
}

// NewGameSession starts a local game for name against "Player 2".
func NewGameSession(engine *game.Engine, logger *zap.Logger, name string) *GameSession {
	s := novanet.NewSession(novanet.SessionConfig{Engine: engine, Logger: logger})
	s.StartLocal(name)
	return &GameSession{session: s}
}

// Submit applies an intent and reports the outcome.
func (g *GameSession) Submit(ctx context.Context, in game.Intent) *ToolResponse {
	_, ok := g.session.Submit(ctx, in)
	return g.respond(ok)
}

// Peek reports the current state and any unread log lines.
func (g *GameSession) Peek() *ToolResponse {
	return g.respond(true)
}

func (g *GameSession) respond(accepted bool) *ToolResponse {
	gs := g.session.Snapshot()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.logSeen > len(gs.Log) {
		g.logSeen = 0
	}
	lines := append([]string{}, gs.Log[g.logSeen:]...)
	g.logSeen = len(gs.Log)

	return &ToolResponse{
		GameID:   g.session.GameID().String(),
		Accepted: accepted,
		Log:      lines,
		State:    BuildStateView(gs),
		GameOver: gs.Over(),
		Winner:   gs.Winner,
		Result:   gs.VictoryReason,
	}
}

// Over reports whether the game has a winner.
func (g *GameSession) Over() bool {
	return g.session.Snapshot().Over()
}

// Close releases the underlying session.
func (g *GameSession) Close() {
	g.session.Close()
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error":"failed to encode response"}`
	}
	return string(data)
}
