package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	novanet "github.com/peterkuimelis/novacana/internal/net"
)

// watcher prints the log of every game seen on the snapshot channel.
type watcher struct {
	out  io.Writer
	seen map[uuid.UUID]int
}

func newWatcher(out io.Writer) *watcher {
	return &watcher{out: out, seen: make(map[uuid.UUID]int)}
}

func (w *watcher) apply(msg novanet.ServerMessage) {
	if msg.Type != novanet.TypeStateUpdate || msg.State == nil {
		return
	}
	gs := msg.State
	seen, known := w.seen[msg.GameID]
	if !known {
		fmt.Fprintf(w.out, "=== Game %s: %s vs %s ===\n", msg.GameID, gs.Players[0].Name, gs.Players[1].Name)
	}
	if seen > len(gs.Log) {
		seen = 0
	}
	for _, line := range gs.Log[seen:] {
		fmt.Fprintf(w.out, "[%s] T%-2d | %s\n", shortID(msg.GameID), gs.Turn, line)
	}
	w.seen[msg.GameID] = len(gs.Log)
	if gs.Over() && len(gs.Log) > seen {
		fmt.Fprintf(w.out, "=== Game %s over: %s ===\n", msg.GameID, gs.VictoryReason)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
