package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/novacana/internal/log"
)

// answer resolves the outstanding decision and clears it.
func (t *txn) answer(player int, a Answer) bool {
	gs := t.gs
	d := gs.Decision
	if d == nil || !t.mayAct(player, d.Player) {
		return false
	}
	p := gs.Player(d.Player)
	if p.HandIndex(d.CardID) < 0 {
		return false
	}

	switch d.Kind {
	case DecisionCompleteSystem:
		name := p.Hand[p.HandIndex(d.CardID)].Name
		if a.Accept {
			for _, id := range d.Compatible {
				if p.HandIndex(id) < 0 {
					return false
				}
			}
			t.deployStar(p, d.CardID, d.Compatible)
			t.log(log.NewCompleteSystemEvent(gs.Turn, t.phase(), p.ID, name))
		} else {
			t.deployStar(p, d.CardID, nil)
			t.log(log.NewDeployEvent(gs.Turn, t.phase(), p.ID, name))
		}

	case DecisionProtoStar:
		var line string
		var kind log.EventType
		switch a.Choice {
		case ProtoDraw:
			n := 0
			for i := 0; i < 2; i++ {
				if _, ok := t.drawCard(p); ok {
					n++
				}
			}
			kind, line = log.EventDraw, fmt.Sprintf("Proto-Star: Drew %d.", n)
		case ProtoSearch:
			kind = log.EventSearch
			if wd, ok := gs.findInDeck(NameWhiteDwarf); ok {
				p.AddToHand(wd)
				line = "Proto-Star: Found White Dwarf."
			} else {
				line = "Proto-Star: Search failed."
			}
		default:
			return false
		}
		proto := p.RemoveFromHand(p.HandIndex(d.CardID))
		gs.sendToDiscard(proto)
		t.log(log.NewEffectEvent(gs.Turn, t.phase(), p.ID, kind, proto.Name, line))

	case DecisionVoidClass:
		if !slices.Contains(d.Options, a.Class) {
			return false
		}
		gs.ForbiddenClass = a.Class
		t.pushChain(p, d.CardID, 0)

	case DecisionDestructionTarget:
		if !slices.Contains(d.Candidates, a.TargetID) {
			return false
		}
		t.pushChain(p, d.CardID, a.TargetID)

	default:
		return false
	}

	gs.Decision = nil
	return true
}

// cancel clears the decision slot. The card that opened it stays in hand.
func (t *txn) cancel(player int) bool {
	d := t.gs.Decision
	if d == nil || !t.mayAct(player, d.Player) {
		return false
	}
	t.gs.Decision = nil
	return true
}
