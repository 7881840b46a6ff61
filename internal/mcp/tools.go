package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/game"
)

var (
	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession
	sessionMu     sync.Mutex

	// engineConfig and logger are set by main.
	engineConfig game.EngineConfig
	logger       = zap.NewNop()
)

// Configure sets how new games build their engine and where the session logs.
func Configure(cfg game.EngineConfig, l *zap.Logger) {
	engineConfig = cfg
	if l != nil {
		logger = l
	}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(discardTool(), handleDiscard)
	s.AddTool(advanceTool(), handleAdvance)
	s.AddTool(answerDecisionTool(), handleAnswerDecision)
	s.AddTool(cancelDecisionTool(), handleCancelDecision)
	s.AddTool(getStateTool(), handleGetState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Novacana game on a shared seat: you play both Player 1 and Player 2. "+
			"Build complete Star Systems by attaching Discoveries up to each Star's class; the first to 3 wins. "+
			"Replaces any running game."),
		mcp.WithString("name", mcp.Description("Name for Player 1 (default \"Player 1\")")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the hand of whoever may act. Stars and Discoveries deploy at once; "+
			"other cards go on the chain. Some chain cards need a target id (a Star or a Discovery on the board)."),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Id of the card in hand")),
		mcp.WithNumber("target_id", mcp.Description("Id of the target card, when the card needs one")),
	)
}

func discardTool() mcp.Tool {
	return mcp.NewTool("discard",
		mcp.WithDescription("Discard a card from the active hand. Only allowed while the hand is over the limit of 5."),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Id of the card in hand")),
	)
}

func advanceTool() mcp.Tool {
	return mcp.NewTool("advance",
		mcp.WithDescription("Resolve the pending chain if there is one, otherwise end the turn. "+
			"Ending the turn over the hand limit opens the discard gate instead."),
	)
}

func answerDecisionTool() mcp.Tool {
	return mcp.NewTool("answer_decision",
		mcp.WithDescription("Answer the open decision in state.decision. Use accept for offer_complete_system, "+
			"choice (draw or search) for proto_star_choice, class for select_void_class and target_id for select_destruction_target."),
		mcp.WithBoolean("accept", mcp.Description("Deploy the Star as a complete system")),
		mcp.WithString("choice", mcp.Description("Proto-Star choice: draw or search")),
		mcp.WithNumber("class", mcp.Description("Star class to forbid")),
		mcp.WithNumber("target_id", mcp.Description("Discovery id to destroy")),
	)
}

func cancelDecisionTool() mcp.Tool {
	return mcp.NewTool("cancel_decision",
		mcp.WithDescription("Back out of the open decision. The card stays in hand and nothing else changes."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state and any log lines not yet seen. Read-only."),
	)
}

// --- Tool handlers ---

func currentSession() *GameSession {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return activeSession
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := NewGameSession(game.NewEngine(engineConfig), logger, request.GetString("name", ""))

	sessionMu.Lock()
	if activeSession != nil {
		activeSession.Close()
	}
	activeSession = sess
	sessionMu.Unlock()

	return mcp.NewToolResultText(respondJSON(sess.Peek())), nil
}

// submit runs an intent against the active session.
func submit(ctx context.Context, in game.Intent) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	if sess.Over() {
		return mcp.NewToolResultError("The game is over. Use start_game to play again."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Submit(ctx, in))), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetInt("card_id", 0)
	if cardID < 1 {
		return mcp.NewToolResultErrorf("Invalid card_id %d.", cardID), nil
	}
	return submit(ctx, game.PlayIntent(0, cardID, request.GetInt("target_id", 0)))
}

func handleDiscard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetInt("card_id", 0)
	if cardID < 1 {
		return mcp.NewToolResultErrorf("Invalid card_id %d.", cardID), nil
	}
	return submit(ctx, game.DiscardIntent(0, cardID))
}

func handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return submit(ctx, game.AdvanceIntent(0))
}

func handleAnswerDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	choice := game.ProtoChoice(request.GetString("choice", ""))
	if choice != "" && choice != game.ProtoDraw && choice != game.ProtoSearch {
		return mcp.NewToolResultErrorf("Invalid choice %q. Use draw or search.", choice), nil
	}
	return submit(ctx, game.AnswerIntent(0, game.Answer{
		Accept:   request.GetBool("accept", false),
		Choice:   choice,
		Class:    request.GetInt("class", 0),
		TargetID: request.GetInt("target_id", 0),
	}))
}

func handleCancelDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return submit(ctx, game.CancelIntent(0))
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Peek())), nil
}
