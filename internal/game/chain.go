package game

import "github.com/peterkuimelis/novacana/internal/log"

// step performs one observable stage of chain resolution: reveal the top
// card, resolve it, or wind down once the chain is empty.
func (t *txn) step() StepKind {
	gs := t.gs
	top, ok := gs.TopOfChain()
	if !ok {
		t.finishChain()
		return StepDrain
	}

	if gs.ResolvingID != top.ID {
		gs.ResolvingID = top.ID
		t.log(log.NewChainRevealEvent(gs.Turn, t.phase(), top.Owner, top.Name))
		return StepReveal
	}

	card := gs.popChain()
	gs.ResolvingID = 0
	gs.sendToDiscard(card)
	gs.SuppressRecycle = false
	t.resolve(card)
	gs.Resolved = append(gs.Resolved, card.Name)
	return StepResolve
}

// finishChain returns control to the Action phase and recycles the discard
// pile into an exhausted deck.
func (t *txn) finishChain() {
	gs := t.gs
	gs.Resolving = false
	gs.ChainPending = false
	gs.ResolvingID = 0
	gs.Resolved = nil
	gs.Phase = PhaseAction

	if !gs.SuppressRecycle && len(gs.Deck) == 0 && len(gs.Discard) > 0 {
		t.recycleDiscard()
	}
	gs.SuppressRecycle = false
	t.log(log.NewChainDrainedEvent(gs.Turn, t.phase()))
}
