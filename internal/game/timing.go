package game

import "time"

// Pacer holds the pauses a live session waits between chain steps so players
// can follow the resolution. The zero Pacer resolves without pausing.
type Pacer struct {
	ResolveDelay time.Duration // between revealing a card and resolving it
	DrainDelay   time.Duration // between the last resolution and returning to Action
}

// DefaultPacer matches the interactive pacing of the table client.
var DefaultPacer = Pacer{
	ResolveDelay: 2500 * time.Millisecond,
	DrainDelay:   1500 * time.Millisecond,
}

// Delay returns how long to wait after a step of the given kind produced gs.
func (p Pacer) Delay(kind StepKind, gs *GameState) time.Duration {
	switch kind {
	case StepReveal:
		return p.ResolveDelay
	case StepResolve:
		if len(gs.Chain) == 0 {
			return p.DrainDelay
		}
	}
	return 0
}

// IsZero reports whether the pacer never waits.
func (p Pacer) IsZero() bool {
	return p.ResolveDelay == 0 && p.DrainDelay == 0
}
