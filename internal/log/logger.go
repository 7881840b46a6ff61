package log

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- recentEvents: a bounded tail for long-running loggers ---

// RecentEvents is how many events TextLogger and ZapLogger keep for Events.
const RecentEvents = 256

type recentEvents struct {
	events []GameEvent
	seq    int
}

func (r *recentEvents) add(event GameEvent) GameEvent {
	r.seq++
	event.Seq = r.seq
	if len(r.events) == RecentEvents {
		copy(r.events, r.events[1:])
		r.events = r.events[:RecentEvents-1]
	}
	r.events = append(r.events, event)
	return event
}

func (r *recentEvents) Events() []GameEvent {
	return r.events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	recentEvents
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	event = l.add(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZapLogger: forwards events to a structured process logger ---

type ZapLogger struct {
	recentEvents
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	event = l.add(event)
	l.z.Info(event.Details,
		zap.Int("seq", event.Seq),
		zap.Int("turn", event.Turn),
		zap.String("phase", event.Phase),
		zap.Int("player", event.Player),
		zap.Stringer("type", event.Type),
		zap.String("card", event.Card),
	)
}

// --- Tee: fans events out to several loggers ---

// Tee logs every event to each of its loggers. Events reports the first one.
type Tee []EventLogger

func (t Tee) Log(event GameEvent) {
	for _, l := range t {
		l.Log(event)
	}
}

func (t Tee) Events() []GameEvent {
	if len(t) == 0 {
		return nil
	}
	return t[0].Events()
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %-10s| %s", e.Turn, e.Phase, e.Details)
}

// --- Helper constructors for common events ---

func NewGameStartEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Setup",
		Type:    EventGameStart,
		Details: "Game Initialized.",
	}
}

func NewTurnEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("--- Turn Ended. %s's Turn ---", name),
	}
}

func NewDrawEvent(turn int, phase string, player int, name, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s drew %s.", name, cardName),
	}
}

func NewDeployEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeploy,
		Card:    cardName,
		Details: fmt.Sprintf("Deployed %s.", cardName),
	}
}

func NewCompleteSystemEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeploy,
		Card:    cardName,
		Details: "Deployed Complete System!",
	}
}

func NewAttachEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttach,
		Card:    cardName,
		Details: fmt.Sprintf("Attached %s.", cardName),
	}
}

func NewChainLinkEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainLink,
		Card:    cardName,
		Details: fmt.Sprintf("%s played to Chain.", cardName),
	}
}

func NewChainStartEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventChainStart,
		Details: "Resolving Chain...",
	}
}

func NewChainRevealEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainReveal,
		Card:    cardName,
		Details: fmt.Sprintf("Resolving %s...", cardName),
	}
}

// NewEffectEvent records the outcome of a resolved chain card.
func NewEffectEvent(turn int, phase string, player int, t EventType, cardName, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    t,
		Card:    cardName,
		Details: details,
	}
}

func NewChainDrainedEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventChainDrained,
		Details: "--- Chain Empty. Action Phase resumes. ---",
	}
}

func NewShuffleEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventShuffle,
		Details: "(Deck Reshuffled)",
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("Discarded %s.", cardName),
	}
}

func NewHandLimitEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHandLimit,
		Details: "Hand limit! Discard to 5.",
	}
}

func NewWinEvent(turn int, phase string, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventWin,
		Details: reason,
	}
}
