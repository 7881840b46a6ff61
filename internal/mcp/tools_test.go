package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/novacana/internal/game"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func decode(t *testing.T, res *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, res.IsError, "tool returned an error")
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text.Text), &resp))
	return resp
}

func resetTools(t *testing.T) {
	t.Helper()
	Configure(game.EngineConfig{Seed: 21, Strict: true}, zaptest.NewLogger(t))
	t.Cleanup(func() {
		sessionMu.Lock()
		if activeSession != nil {
			activeSession.Close()
		}
		activeSession = nil
		sessionMu.Unlock()
	})
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("novacana", "test")
	assert.NotPanics(t, func() { RegisterTools(s) })
}

func TestToolsRequireGame(t *testing.T) {
	resetTools(t)
	for _, h := range []handler{handleAdvance, handleGetState, handleCancelDecision} {
		res := call(t, h, nil)
		assert.True(t, res.IsError)
	}
}

func TestStartGameAndPlay(t *testing.T) {
	resetTools(t)

	resp := decode(t, call(t, handleStartGame, map[string]any{"name": "Claude"}))
	assert.True(t, resp.Accepted)
	assert.NotEmpty(t, resp.GameID)
	assert.Equal(t, "Game Initialized.", resp.Log[0])
	require.Len(t, resp.State.Players, 2)
	assert.Equal(t, "Claude", resp.State.Players[0].Name)
	assert.Equal(t, "Player 2", resp.State.Players[1].Name)
	assert.Len(t, resp.State.Players[0].Hand, 6)
	assert.Equal(t, game.DefaultCatalog().PoolSize()-11, resp.State.DeckCount)

	// Log lines are reported once.
	again := decode(t, call(t, handleGetState, nil))
	assert.Empty(t, again.Log)

	// Six cards: the first advance opens the discard gate.
	resp = decode(t, call(t, handleAdvance, nil))
	assert.True(t, resp.Accepted)
	assert.True(t, resp.State.DiscardMode)
	assert.Equal(t, []string{"Hand limit! Discard to 5."}, resp.Log)

	rejected := decode(t, call(t, handleAdvance, nil))
	assert.False(t, rejected.Accepted)
	assert.Empty(t, rejected.Log)

	card := resp.State.Players[0].Hand[0].ID
	resp = decode(t, call(t, handleDiscard, map[string]any{"card_id": float64(card)}))
	assert.True(t, resp.Accepted)
	assert.False(t, resp.State.DiscardMode)

	resp = decode(t, call(t, handleAdvance, nil))
	assert.True(t, resp.Accepted)
	assert.Equal(t, 2, resp.State.Turn)
	assert.Equal(t, 2, resp.State.Active)
}

func TestArgumentValidation(t *testing.T) {
	resetTools(t)
	decode(t, call(t, handleStartGame, nil))

	assert.True(t, call(t, handlePlayCard, map[string]any{}).IsError)
	assert.True(t, call(t, handleDiscard, map[string]any{"card_id": float64(-1)}).IsError)
	assert.True(t, call(t, handleAnswerDecision, map[string]any{"choice": "both"}).IsError)

	resp := decode(t, call(t, handleAnswerDecision, map[string]any{"accept": true}))
	assert.False(t, resp.Accepted, "no decision is open")
	resp = decode(t, call(t, handleCancelDecision, nil))
	assert.False(t, resp.Accepted)
}

func TestBuildStateView(t *testing.T) {
	gs := game.NewEngine(game.EngineConfig{Seed: 2}).NewGame("A", "B")
	gs.Players[1].RevealedUntil = gs.Turn

	sv := BuildStateView(gs)

	assert.Equal(t, "Action", sv.Phase)
	assert.Equal(t, 1, sv.Active)
	assert.Len(t, sv.Players[0].Hand, 6)
	assert.False(t, sv.Players[0].Revealed)
	assert.True(t, sv.Players[1].Revealed)
	assert.Empty(t, sv.Players[0].Board)
	assert.Equal(t, len(gs.Deck), sv.DeckCount)
}
