package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/novacana/internal/log"
)

// outcome is what an effect reports after mutating the state.
type outcome struct {
	kind log.EventType
	line string
}

// resolve runs the effect of a card that was just popped off the chain and
// placed on top of the discard pile.
func (t *txn) resolve(card CardInstance) {
	owner := t.gs.Player(card.Owner)
	opp := t.gs.Player(Opponent(card.Owner))

	var out outcome
	switch card.Effect {
	case EffectNone, EffectProtoStar:
		out = resolvedLine(card)
	case EffectCosmicDenial:
		out = t.cosmicDenial()
	case EffectSolarEclipse:
		out = t.solarEclipse(card, owner)
	case EffectPlanetOfLife:
		out = t.planetOfLife(card, owner)
	case EffectAthena:
		out = t.athena(card, opp)
	case EffectIgnition:
		out = t.ignition(card, owner, opp)
	case EffectStellarAlignment:
		out = t.stellarAlignment(owner)
	case EffectWormhole:
		out = t.wormhole(owner, opp)
	case EffectAstralProjection:
		out = t.astralProjection(opp)
	case EffectBlackHole:
		out = t.blackHole(owner, opp)
	case EffectPulsar:
		out = t.pulsar(owner)
	case EffectDarkMatterVoid:
		out = t.darkMatterVoid()
	case EffectQuantumEntanglement:
		out = t.quantumEntanglement(owner, opp)
	case EffectNurseryCollapse:
		out = t.nurseryCollapse()
	case EffectSupernova:
		out = t.supernova(card, owner)
	default:
		panic(fmt.Sprintf("no resolver for effect %s", card.Effect))
	}
	t.log(log.NewEffectEvent(t.gs.Turn, t.phase(), owner.ID, out.kind, card.Name, out.line))
}

func resolvedLine(card CardInstance) outcome {
	return outcome{log.EventChainResolve, fmt.Sprintf("%s resolved.", card.Name)}
}

// takeFromDiscard pulls a card back out of the discard pile by id.
func (t *txn) takeFromDiscard(id int) (CardInstance, bool) {
	i := slices.IndexFunc(t.gs.Discard, func(c CardInstance) bool { return c.ID == id })
	if i < 0 {
		return CardInstance{}, false
	}
	card := t.gs.Discard[i]
	t.gs.Discard = slices.Delete(t.gs.Discard, i, i+1)
	return card, true
}

// attachResolved moves the just-resolved card from the discard pile onto a Star.
func (t *txn) attachResolved(card CardInstance, star *BoardCard) bool {
	c, ok := t.takeFromDiscard(card.ID)
	if !ok {
		return false
	}
	star.Attachments = append(star.Attachments, c)
	t.gs.SuppressRecycle = true
	return true
}

func (t *txn) cosmicDenial() outcome {
	if len(t.gs.Chain) == 0 {
		return outcome{log.EventNegate, "Cosmic Denial had nothing to negate."}
	}
	negated := t.gs.popChain()
	t.gs.sendToDiscard(negated)
	return outcome{log.EventNegate, fmt.Sprintf("Cosmic Denial NEGATED %s!", negated.Name)}
}

func (t *txn) solarEclipse(card CardInstance, owner *PlayerState) outcome {
	si := owner.StarIndex(card.TargetID)
	if si < 0 || !t.attachResolved(card, &owner.Board[si]) {
		return outcome{log.EventAttach, "Solar Eclipse found no Star."}
	}
	return outcome{log.EventAttach, "Solar Eclipse attached."}
}

func (t *txn) planetOfLife(card CardInstance, owner *PlayerState) outcome {
	si := owner.StarIndex(card.TargetID)
	if si < 0 || !owner.Board[si].HasAttachment(NameRockyPlanet) {
		return outcome{log.EventAttach, "Planet of Life found no Rocky Planet."}
	}
	star := &owner.Board[si]
	if !t.attachResolved(card, star) {
		return outcome{log.EventAttach, "Planet of Life found no Rocky Planet."}
	}
	return outcome{log.EventAttach, fmt.Sprintf("Planet of Life began on %s.", star.Name)}
}

// athena destroys the targeted attachment unless its Star has been eclipsed
// since the card was played.
func (t *txn) athena(card CardInstance, opp *PlayerState) outcome {
	for si := range opp.Board {
		star := &opp.Board[si]
		if star.Eclipsed() {
			continue
		}
		ai := star.attachmentIndex(func(c CardInstance) bool { return c.ID == card.TargetID })
		if ai < 0 {
			continue
		}
		destroyed := star.Attachments[ai]
		star.Attachments = slices.Delete(star.Attachments, ai, ai+1)
		t.gs.sendToDiscard(destroyed)
		return outcome{log.EventDestroy, fmt.Sprintf("Athena destroyed %s!", destroyed.Name)}
	}
	return outcome{log.EventDestroy, "Athena found no target."}
}

func (t *txn) ignition(card CardInstance, owner, opp *PlayerState) outcome {
	si := opp.StarIndex(card.TargetID)
	if si < 0 || opp.Board[si].Eclipsed() {
		return outcome{log.EventDestroy, "Ignition found no Gas Giant."}
	}
	star := &opp.Board[si]
	ai := star.attachmentIndex(func(c CardInstance) bool { return c.Name == NameGasGiant })
	if ai < 0 {
		return outcome{log.EventDestroy, "Ignition found no Gas Giant."}
	}
	gas := star.Attachments[ai]
	star.Attachments = slices.Delete(star.Attachments, ai, ai+1)
	t.gs.sendToDiscard(gas)

	if yd, ok := t.gs.findInDeck(NameYellowDwarf); ok {
		owner.AddToHand(yd)
		return outcome{log.EventDestroy, "Ignition destroyed Gas Giant! Found Yellow Dwarf."}
	}
	return outcome{log.EventDestroy, "Ignition destroyed Gas Giant! Yellow Dwarf search failed."}
}

func (t *txn) stellarAlignment(owner *PlayerState) outcome {
	n := 0
	for i := 0; i < 2; i++ {
		if _, ok := t.drawCard(owner); ok {
			n++
		}
	}
	return outcome{log.EventDraw, fmt.Sprintf("Stellar Alignment: Drawn %d.", n)}
}

func (t *txn) wormhole(owner, opp *PlayerState) outcome {
	if len(opp.Hand) == 0 {
		return outcome{log.EventSteal, "Wormhole found nothing."}
	}
	stolen := opp.RemoveFromHand(t.e.rng.Intn(len(opp.Hand)))
	owner.AddToHand(stolen)
	return outcome{log.EventSteal, "Wormhole stole a card!"}
}

func (t *txn) astralProjection(opp *PlayerState) outcome {
	opp.RevealedUntil = t.gs.Turn + RevealTurns
	return outcome{log.EventReveal, "Hand revealed for 2 turns."}
}

// collect empties a player's hand and board into a single slice.
func collect(p *PlayerState) []CardInstance {
	cards := append([]CardInstance(nil), p.Hand...)
	for _, b := range p.Board {
		cards = append(cards, b.CardInstance)
		cards = append(cards, b.Attachments...)
	}
	p.Hand = nil
	p.Board = nil
	return cards
}

// blackHole returns every hand, board and discarded card to the deck, skips
// ahead three turns, and deals both players a fresh hand.
func (t *txn) blackHole(owner, opp *PlayerState) outcome {
	gs := t.gs
	pool := collect(owner)
	pool = append(pool, collect(opp)...)
	pool = append(pool, gs.Discard...)
	gs.Discard = nil

	gs.Deck = append(gs.Deck, returnToDeck(pool)...)
	shuffle(t.e.rng, gs.Deck)
	gs.Turn += BlackHoleSkip

	for i := 0; i < InitialHandSize; i++ {
		t.drawCard(owner)
		t.drawCard(opp)
	}
	gs.SuppressRecycle = true
	return outcome{log.EventReset, "Black Hole RESET THE GAME."}
}

func (t *txn) pulsar(owner *PlayerState) outcome {
	gs := t.gs
	pool := collect(owner)
	n := len(pool)
	gs.Deck = append(gs.Deck, returnToDeck(pool)...)
	shuffle(t.e.rng, gs.Deck)

	drawn := 0
	for i := 0; i < n; i++ {
		if _, ok := t.drawCard(owner); ok {
			drawn++
		}
	}
	return outcome{log.EventShuffle, fmt.Sprintf("Pulsar: Reshuffled and drawn %d.", drawn)}
}

func (t *txn) darkMatterVoid() outcome {
	if t.gs.ForbiddenClass == 0 {
		return outcome{log.EventBan, "Void: no class banned."}
	}
	return outcome{log.EventBan, fmt.Sprintf("Void: Class %d banned.", t.gs.ForbiddenClass)}
}

func (t *txn) quantumEntanglement(owner, opp *PlayerState) outcome {
	if len(owner.Hand) == 0 || len(opp.Hand) == 0 {
		return outcome{log.EventSwap, "Quantum Entanglement failed: a hand is empty."}
	}
	i := t.e.rng.Intn(len(owner.Hand))
	j := t.e.rng.Intn(len(opp.Hand))
	mine, theirs := owner.Hand[i], opp.Hand[j]
	mine.Owner, theirs.Owner = opp.ID, owner.ID
	owner.Hand[i], opp.Hand[j] = theirs, mine
	return outcome{log.EventSwap, "Quantum Entanglement swapped cards."}
}

func (t *txn) nurseryCollapse() outcome {
	gs := t.gs
	n := min(MillCount, len(gs.Deck))
	milled := slices.Clone(gs.Deck[:n])
	gs.Deck = gs.Deck[n:]
	gs.Discard = append(milled, gs.Discard...)
	return outcome{log.EventMill, fmt.Sprintf("Milled %d cards.", n)}
}

// supernova wins the game once every distinct Supernova has resolved in the
// current drain, counting the card resolving now.
func (t *txn) supernova(card CardInstance, owner *PlayerState) outcome {
	gs := t.gs
	seen := append(slices.Clone(gs.Resolved), card.Name)
	for _, name := range t.e.supernova {
		if !slices.Contains(seen, name) {
			return resolvedLine(card)
		}
	}
	if !gs.Over() {
		gs.Winner = owner.ID
		gs.VictoryReason = "SUPERNOVA EVENT TRIGGERED!"
	}
	return outcome{log.EventWin, "SUPERNOVA EVENT TRIGGERED!"}
}
