package game

import "github.com/peterkuimelis/novacana/internal/log"

// drawCard moves the top deck card into p's hand. It never reshuffles.
func (t *txn) drawCard(p *PlayerState) (CardInstance, bool) {
	card, ok := t.gs.takeFromDeck()
	if !ok {
		return CardInstance{}, false
	}
	p.AddToHand(card)
	return card, true
}

// drawWithReshuffle draws one card, first recycling the discard pile when the
// deck is empty. With both empty nothing is drawn.
func (t *txn) drawWithReshuffle(p *PlayerState) (CardInstance, bool) {
	if len(t.gs.Deck) == 0 && len(t.gs.Discard) > 0 {
		t.recycleDiscard()
	}
	return t.drawCard(p)
}

// recycleDiscard shuffles the whole discard pile into a new deck below any
// cards still in it.
func (t *txn) recycleDiscard() {
	gs := t.gs
	gs.Deck = append(gs.Deck, returnToDeck(gs.Discard)...)
	gs.Discard = nil
	shuffle(t.e.rng, gs.Deck)
	t.log(log.NewShuffleEvent(gs.Turn, t.phase()))
}

// advance ends the turn, starts chain resolution, or opens the discard gate.
func (t *txn) advance(player int) bool {
	gs := t.gs

	// A pending chain takes priority over passing the turn, and either player
	// may call for it.
	if gs.ChainPending && len(gs.Chain) > 0 {
		gs.Phase = PhaseReaction
		gs.ChainPending = false
		gs.Resolving = true
		gs.ResolvingID = 0
		gs.Resolved = nil
		gs.SuppressRecycle = false
		t.log(log.NewChainStartEvent(gs.Turn, t.phase()))
		return true
	}

	if gs.Phase != PhaseAction || !t.mayAct(player, gs.Active) {
		return false
	}

	if len(gs.ActivePlayer().Hand) > MaxHandSize {
		if gs.DiscardMode {
			return false
		}
		gs.DiscardMode = true
		t.log(log.NewHandLimitEvent(gs.Turn, t.phase(), gs.Active))
		return true
	}

	t.passTurn()
	return true
}

func (t *txn) passTurn() {
	gs := t.gs
	gs.Active = Opponent(gs.Active)
	gs.Turn++
	gs.ForbiddenClass = 0
	gs.DiscardMode = false

	p := gs.ActivePlayer()
	t.drawWithReshuffle(p)
	t.log(log.NewTurnEvent(gs.Turn, gs.Active, p.Name))
}

// discard moves a card from the active hand to the discard pile. It is only
// legal while the hand is over the limit.
func (t *txn) discard(player, id int) bool {
	gs := t.gs
	if gs.Phase != PhaseAction || !t.mayAct(player, gs.Active) {
		return false
	}
	p := gs.ActivePlayer()
	if len(p.Hand) <= MaxHandSize {
		return false
	}
	i := p.HandIndex(id)
	if i < 0 {
		return false
	}

	card := p.RemoveFromHand(i)
	gs.sendToDiscard(card)
	t.log(log.NewDiscardEvent(gs.Turn, t.phase(), p.ID, card.Name))

	return true
}

// settleHandLimit ends the discard gate once the active hand is back within
// the limit, however it got there.
func (t *txn) settleHandLimit() {
	gs := t.gs
	if gs.DiscardMode && len(gs.ActivePlayer().Hand) <= MaxHandSize {
		gs.DiscardMode = false
	}
}
