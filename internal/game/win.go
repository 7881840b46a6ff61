package game

import (
	"fmt"

	"github.com/peterkuimelis/novacana/internal/log"
)

// evaluateWin recounts completed systems and declares the first player, in id
// order, who holds three of them.
func (t *txn) evaluateWin() {
	gs := t.gs
	for i := range gs.Players {
		p := &gs.Players[i]
		p.SystemsCompleted = 0
		for j := range p.Board {
			if p.Board[j].Complete() {
				p.SystemsCompleted++
			}
		}
	}
	if gs.Over() {
		return
	}
	for id := 1; id <= 2; id++ {
		p := gs.Player(id)
		if p.SystemsCompleted >= SystemsToWin {
			gs.Winner = id
			gs.VictoryReason = fmt.Sprintf("GALACTIC DOMINANCE: %s completed %d Star Systems!", p.Name, SystemsToWin)
			t.log(log.NewWinEvent(gs.Turn, t.phase(), id, gs.VictoryReason))
			return
		}
	}
}
