package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/novacana/internal/log"
)

const testSeed = 42

func newTestEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	return NewEngine(EngineConfig{Logger: logger, Seed: testSeed, Strict: true}), logger
}

// newTestGame starts a game and returns both opening hands to the deck so
// tests can place exactly the cards they need.
func newTestGame(t *testing.T) (*Engine, *GameState, *log.MemoryLogger) {
	t.Helper()
	e, logger := newTestEngine(t)
	gs := e.NewGame("Alice", "Bob")
	for i := range gs.Players {
		gs.Deck = append(gs.Deck, returnToDeck(gs.Players[i].Hand)...)
		gs.Players[i].Hand = nil
	}
	requireConserved(t, gs)
	return e, gs, logger
}

// give moves the first deck card with the given name into a player's hand.
func give(t *testing.T, gs *GameState, player int, name string) CardInstance {
	t.Helper()
	card, ok := gs.findInDeck(name)
	require.True(t, ok, "no %s left in deck", name)
	p := gs.Player(player)
	p.AddToHand(card)
	return p.Hand[len(p.Hand)-1]
}

// fillers are the plain Discoveries fillHand deals, in rotation.
var fillers = []string{"Comet", "Asteroid Belt", "Dwarf Planet", "Rocky Planet"}

// fillHand tops a player's hand up to n cards with plain Discoveries.
func fillHand(t *testing.T, gs *GameState, player, n int) {
	t.Helper()
	for i := 0; len(gs.Player(player).Hand) < n; i++ {
		require.Less(t, i, 4*len(fillers), "deck ran out of filler Discoveries")
		name := fillers[i%len(fillers)]
		if _, ok := gs.findInDeck(name); ok {
			give(t, gs, player, name)
		}
	}
}

// place puts a Star from the deck straight onto a board with the named attachments.
func place(t *testing.T, gs *GameState, player int, star string, attachments ...string) BoardCard {
	t.Helper()
	s, ok := gs.findInDeck(star)
	require.True(t, ok, "no %s left in deck", star)
	s.Owner = player
	bc := BoardCard{CardInstance: s}
	for _, name := range attachments {
		a, ok := gs.findInDeck(name)
		require.True(t, ok, "no %s left in deck", name)
		a.Owner = player
		bc.Attachments = append(bc.Attachments, a)
	}
	p := gs.Player(player)
	p.Board = append(p.Board, bc)
	return bc
}

// toDiscard moves the first deck card with the given name onto the discard pile.
func toDiscard(t *testing.T, gs *GameState, name string) CardInstance {
	t.Helper()
	card, ok := gs.findInDeck(name)
	require.True(t, ok, "no %s left in deck", name)
	gs.sendToDiscard(card)
	return card
}

// emptyDeckIntoDiscard moves the whole deck onto the discard pile.
func emptyDeckIntoDiscard(gs *GameState) {
	gs.Discard = append(gs.Discard, gs.Deck...)
	gs.Deck = nil
}

func mustApply(t *testing.T, e *Engine, gs *GameState, in Intent) *GameState {
	t.Helper()
	next, ok := e.Apply(gs, in)
	require.True(t, ok, "intent %+v was rejected", in)
	return next
}

func requireRejected(t *testing.T, e *Engine, gs *GameState, in Intent) {
	t.Helper()
	logLen := len(gs.Log)
	next, ok := e.Apply(gs, in)
	require.False(t, ok, "intent %+v was accepted", in)
	require.Same(t, gs, next)
	require.Len(t, gs.Log, logLen)
}

func requireConserved(t *testing.T, gs *GameState) {
	t.Helper()
	require.NoError(t, gs.CheckInvariants(DefaultCatalog().PoolSize()))
}

// resolveAll calls for the pending chain and drains it synchronously.
func resolveAll(t *testing.T, e *Engine, gs *GameState) *GameState {
	t.Helper()
	gs = mustApply(t, e, gs, AdvanceIntent(0))
	require.True(t, gs.Resolving)
	return e.Drain(gs)
}

func names(cards []CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func ids(cards []CardInstance) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func lastLog(gs *GameState) string {
	if len(gs.Log) == 0 {
		return ""
	}
	return gs.Log[len(gs.Log)-1]
}
