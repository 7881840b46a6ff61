package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventGameStart EventType = iota
	EventDraw
	EventDeploy
	EventAttach
	EventChainLink
	EventChainStart
	EventChainReveal
	EventChainResolve
	EventChainDrained
	EventNegate
	EventDestroy
	EventSearch
	EventSteal
	EventSwap
	EventReveal
	EventReset
	EventMill
	EventBan
	EventDiscard
	EventShuffle
	EventHandLimit
	EventNewTurn
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventDraw:
		return "Draw"
	case EventDeploy:
		return "Deploy"
	case EventAttach:
		return "Attach"
	case EventChainLink:
		return "ChainLink"
	case EventChainStart:
		return "ChainStart"
	case EventChainReveal:
		return "ChainReveal"
	case EventChainResolve:
		return "ChainResolve"
	case EventChainDrained:
		return "ChainDrained"
	case EventNegate:
		return "Negate"
	case EventDestroy:
		return "Destroy"
	case EventSearch:
		return "Search"
	case EventSteal:
		return "Steal"
	case EventSwap:
		return "Swap"
	case EventReveal:
		return "Reveal"
	case EventReset:
		return "Reset"
	case EventMill:
		return "Mill"
	case EventBan:
		return "Ban"
	case EventDiscard:
		return "Discard"
	case EventShuffle:
		return "Shuffle"
	case EventHandLimit:
		return "HandLimit"
	case EventNewTurn:
		return "NewTurn"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // phase name at the time of the event
	Player  int       // acting player (1 or 2, 0 for none)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // the log line as shown to players
}
