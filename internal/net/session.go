package net

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/game"
	"github.com/peterkuimelis/novacana/internal/telemetry"
)

// ErrGameInProgress is returned when a network game is started over a running one.
var ErrGameInProgress = errors.New("a game is already in progress")

// Mode says how the current game was started.
type Mode int

const (
	ModeIdle Mode = iota
	ModeLocal
	ModeNetwork
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeLocal:
		return "local"
	case ModeNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Publisher receives every snapshot the session broadcasts.
type Publisher interface {
	Publish(ctx context.Context, msg ServerMessage) error
}

// SessionConfig holds configuration for creating a session.
type SessionConfig struct {
	Engine     *game.Engine // nil for a default engine
	Pacer      game.Pacer   // zero resolves chains inline
	Logger     *zap.Logger
	Publishers []Publisher
}

// Session is the single owner of the authoritative game state. All intents go
// through it; every accepted transition and chain step is broadcast to
// subscribers and publishers as a whole snapshot.
//
// Snapshots handed out are shared and must not be modified.
type Session struct {
	engine     *game.Engine
	pacer      game.Pacer
	logger     *zap.Logger
	tracer     trace.Tracer
	publishers []Publisher

	mu      sync.Mutex
	gameID  uuid.UUID
	state   *game.GameState
	mode    Mode
	gen     int // bumped by every start and reset; stale drivers exit
	driving bool
	subs    map[int]chan ServerMessage
	nextSub int

	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates an idle session.
func NewSession(cfg SessionConfig) *Session {
	engine := cfg.Engine
	if engine == nil {
		engine = game.NewEngine(game.EngineConfig{})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		engine:     engine,
		pacer:      cfg.Pacer,
		logger:     logger,
		tracer:     otel.Tracer(telemetry.TracerName),
		publishers: cfg.Publishers,
		state:      game.NewGameState(),
		subs:       make(map[int]chan ServerMessage),
		done:       make(chan struct{}),
	}
}

// Engine returns the engine the session runs.
func (s *Session) Engine() *game.Engine {
	return s.engine
}

// StartLocal begins a hot-seat game, replacing whatever was running.
// Player 2 is always "Player 2".
func (s *Session) StartLocal(name string) *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(ModeLocal, name, "Player 2")
}

// StartNetwork begins a game between the host and a joined guest. It fails
// while another game is still running.
func (s *Session) StartNetwork(host, guest string) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeIdle && !s.state.Over() {
		return nil, ErrGameInProgress
	}
	return s.startLocked(ModeNetwork, host, guest), nil
}

func (s *Session) startLocked(mode Mode, p1, p2 string) *game.GameState {
	s.gen++
	s.driving = false
	s.gameID = uuid.New()
	s.mode = mode
	s.state = s.engine.NewGame(p1, p2)
	s.logger.Info("game started",
		zap.Stringer("game_id", s.gameID),
		zap.Stringer("mode", mode),
		zap.String("player1", s.state.Player(1).Name),
		zap.String("player2", s.state.Player(2).Name),
	)
	s.broadcastLocked(context.Background())
	return s.state
}

// Reset drops the current game and returns to an empty Setup state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.driving = false
	s.mode = ModeIdle
	s.state = game.NewGameState()
	s.logger.Info("session reset", zap.Stringer("game_id", s.gameID))
	s.broadcastLocked(context.Background())
}

// Submit applies an intent. A rejected intent returns the current state and
// false and broadcasts nothing. When the intent starts chain resolution the
// chain is drained inline with a zero pacer and in the background otherwise.
func (s *Session) Submit(ctx context.Context, in game.Intent) (*game.GameState, bool) {
	ctx, span := s.tracer.Start(ctx, "session.submit", trace.WithAttributes(
		attribute.String("intent.kind", string(in.Kind)),
		attribute.Int("intent.player", in.Player),
		attribute.Int("intent.card_id", in.CardID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.engine.Apply(s.state, in)
	span.SetAttributes(attribute.Bool("intent.accepted", ok))
	if !ok {
		s.logger.Debug("intent rejected",
			zap.String("kind", string(in.Kind)),
			zap.Int("player", in.Player),
			zap.Int("card_id", in.CardID),
		)
		return s.state, false
	}
	s.state = next
	s.broadcastLocked(ctx)

	if next.Resolving {
		if s.pacer.IsZero() {
			for {
				if _, more := s.stepLocked(ctx); !more {
					break
				}
			}
		} else if !s.driving {
			s.driving = true
			go s.drive(s.gen)
		}
	}
	return s.state, true
}

// drive steps a chain to completion, sleeping between steps as the pacer asks.
func (s *Session) drive(gen int) {
	for {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		delay, more := s.stepLocked(context.Background())
		if !more {
			s.driving = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		if delay <= 0 {
			continue
		}
		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-s.done:
			t.Stop()
			return
		}
	}
}

// stepLocked performs one chain step. It reports the pause before the next
// one and whether there is a next one.
func (s *Session) stepLocked(ctx context.Context) (time.Duration, bool) {
	ctx, span := s.tracer.Start(ctx, "session.step")
	defer span.End()

	next, kind := s.engine.Step(s.state)
	span.SetAttributes(attribute.String("step.kind", kind.String()))
	if kind == game.StepNone {
		return 0, false
	}
	s.state = next
	s.logger.Debug("chain step", zap.Stringer("kind", kind), zap.Int("chain", len(next.Chain)))
	s.broadcastLocked(ctx)
	if kind == game.StepDrain {
		return 0, false
	}
	return s.pacer.Delay(kind, next), true
}

func (s *Session) broadcastLocked(ctx context.Context) {
	msg := StateUpdate(s.gameID, s.state)
	for _, ch := range s.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber is behind; only the newest snapshot matters.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	}
	for _, p := range s.publishers {
		if err := p.Publish(ctx, msg); err != nil {
			s.logger.Warn("publish snapshot", zap.Stringer("game_id", s.gameID), zap.Error(err))
		}
	}
}

// Subscribe returns a channel of snapshots, primed with the current one, and
// a function that ends the subscription.
func (s *Session) Subscribe() (<-chan ServerMessage, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan ServerMessage, 16)
	ch <- StateUpdate(s.gameID, s.state)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameID returns the id of the current game.
func (s *Session) GameID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// Mode returns how the current game was started.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Resolving reports whether a chain is being stepped.
func (s *Session) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Resolving && !s.state.Over()
}

// Close stops any background chain driver.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.gen++
		s.mu.Unlock()
	})
}
