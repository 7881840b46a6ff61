package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/novacana/internal/log"
)

// EngineConfig holds configuration for creating an engine.
type EngineConfig struct {
	Catalog *Catalog        // nil for the built-in catalog
	Logger  log.EventLogger // receives events of accepted transitions
	Seed    int64           // RNG seed (0 for random)
	Strict  bool            // panic on invariant violations after every transition
}

// Engine runs the rules. It holds no game state of its own: every operation
// takes the current state and returns the next one.
type Engine struct {
	catalog   *Catalog
	logger    log.EventLogger
	rng       *rand.Rand
	strict    bool
	supernova []string
}

// NewEngine creates an engine from the given config.
func NewEngine(cfg EngineConfig) *Engine {
	c := cfg.Catalog
	if c == nil {
		c = DefaultCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		catalog:   c,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
		strict:    cfg.Strict,
		supernova: c.SupernovaNames(),
	}
}

// Catalog returns the catalog the engine deals from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Logger returns the engine's event logger.
func (e *Engine) Logger() log.EventLogger {
	return e.logger
}

// txn is one transition in progress: a private clone plus the events it produced.
type txn struct {
	e      *Engine
	gs     *GameState
	events []log.GameEvent
}

func (e *Engine) begin(gs *GameState) *txn {
	return &txn{e: e, gs: gs.Clone()}
}

func (t *txn) log(ev log.GameEvent) {
	t.gs.Log = append(t.gs.Log, ev.Details)
	t.events = append(t.events, ev)
}

func (t *txn) phase() string {
	return t.gs.Phase.String()
}

func (e *Engine) commit(t *txn) *GameState {
	if e.strict {
		if err := t.gs.CheckInvariants(e.catalog.PoolSize()); err != nil {
			panic(fmt.Sprintf("invariant violated: %v", err))
		}
	}
	for _, ev := range t.events {
		e.logger.Log(ev)
	}
	return t.gs
}

// NewGame builds a fresh deck and deals the opening hands: five to each
// player, then one more to player 1.
func (e *Engine) NewGame(p1, p2 string) *GameState {
	if p1 == "" {
		p1 = "Player 1"
	}
	if p2 == "" {
		p2 = "Player 2"
	}
	t := e.begin(NewGameState())
	gs := t.gs
	gs.Players[0].Name = p1
	gs.Players[1].Name = p2
	gs.Deck = BuildDeck(e.catalog, e.rng)
	gs.Turn = 1
	gs.Active = 1
	t.log(log.NewGameStartEvent(gs.Turn))

	for i := 0; i < InitialHandSize; i++ {
		t.drawCard(gs.Player(1))
	}
	for i := 0; i < InitialHandSize; i++ {
		t.drawCard(gs.Player(2))
	}
	if card, ok := t.drawCard(gs.Player(1)); ok {
		t.log(log.NewDrawEvent(gs.Turn, "Setup", 1, p1, card.Name))
	}
	gs.Phase = PhaseAction
	return e.commit(t)
}

// Apply validates and performs one intent. A rejected intent returns the
// state it was given and false, with nothing logged.
func (e *Engine) Apply(gs *GameState, in Intent) (*GameState, bool) {
	if gs.Phase == PhaseSetup || gs.Over() || gs.Resolving {
		return gs, false
	}
	if gs.Decision != nil && in.Kind != IntentAnswer && in.Kind != IntentCancel {
		return gs, false
	}

	t := e.begin(gs)
	var ok bool
	switch in.Kind {
	case IntentPlayCard:
		ok = t.playCard(in.Player, in.CardID, in.TargetID)
	case IntentDiscard:
		ok = t.discard(in.Player, in.CardID)
	case IntentAdvance:
		ok = t.advance(in.Player)
	case IntentAnswer:
		ok = t.answer(in.Player, in.Answer)
	case IntentCancel:
		ok = t.cancel(in.Player)
	}
	if !ok {
		return gs, false
	}
	t.settleHandLimit()
	t.evaluateWin()
	return e.commit(t), true
}

// Step performs one stage of chain resolution. It returns StepNone and the
// unchanged state when nothing is resolving.
func (e *Engine) Step(gs *GameState) (*GameState, StepKind) {
	if !gs.Resolving || gs.Over() || gs.Decision != nil {
		return gs, StepNone
	}
	t := e.begin(gs)
	kind := t.step()
	t.settleHandLimit()
	t.evaluateWin()
	return e.commit(t), kind
}

// Drain steps the chain until it is empty or the game ends.
func (e *Engine) Drain(gs *GameState) *GameState {
	for {
		next, kind := e.Step(gs)
		gs = next
		if kind == StepNone || kind == StepDrain {
			return gs
		}
	}
}
