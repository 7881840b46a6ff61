package game

import "github.com/peterkuimelis/novacana/internal/log"

// playCard handles a hand card being played. Stars and Discoveries deploy
// immediately; everything else goes through validation and then the chain.
func (t *txn) playCard(player, id, target int) bool {
	gs := t.gs
	owner := gs.handOwner(id)
	if owner == 0 || !t.mayAct(player, owner) {
		return false
	}
	p := gs.Player(owner)
	card := p.Hand[p.HandIndex(id)]

	switch gs.Phase {
	case PhaseAction:
		if owner != gs.Active {
			return false
		}
	case PhaseReaction:
		// Responding to a pending chain: the opponent may only add chain cards.
		if !gs.ChainPending {
			return false
		}
		if owner != gs.Active && !card.Category.ChainBound() {
			return false
		}
	default:
		return false
	}

	switch card.Category {
	case CategoryStar:
		return t.playStar(p, card)
	case CategoryDiscovery:
		return t.playDiscovery(p, card, target)
	default:
		return t.playChainCard(p, card, target)
	}
}

func (t *txn) playStar(p *PlayerState, card CardInstance) bool {
	gs := t.gs
	if card.Class > 0 && card.Class == gs.ForbiddenClass {
		return false
	}

	if card.Effect == EffectProtoStar {
		gs.Decision = &Decision{Kind: DecisionProtoStar, Player: p.ID, CardID: card.ID}
		return true
	}

	if card.Class > 0 && p.CountInHand(CategoryDiscovery) >= card.Class {
		var compatible []int
		for _, c := range p.Hand {
			if c.Category == CategoryDiscovery && len(compatible) < card.Class {
				compatible = append(compatible, c.ID)
			}
		}
		gs.Decision = &Decision{
			Kind:       DecisionCompleteSystem,
			Player:     p.ID,
			CardID:     card.ID,
			Compatible: compatible,
		}
		return true
	}

	t.deployStar(p, card.ID, nil)
	t.log(log.NewDeployEvent(gs.Turn, t.phase(), p.ID, card.Name))
	return true
}

// deployStar moves a Star and any listed hand cards onto the board as one system.
func (t *txn) deployStar(p *PlayerState, starID int, attach []int) {
	star := p.RemoveFromHand(p.HandIndex(starID))
	star.TargetID = 0
	bc := BoardCard{CardInstance: star}
	for _, id := range attach {
		i := p.HandIndex(id)
		if i < 0 {
			continue
		}
		bc.Attachments = append(bc.Attachments, p.RemoveFromHand(i))
	}
	p.Board = append(p.Board, bc)
}

func (t *txn) playDiscovery(p *PlayerState, card CardInstance, target int) bool {
	si := p.StarIndex(target)
	if target == 0 || si < 0 {
		return false
	}
	star := &p.Board[si]
	if star.Class <= 0 || star.DiscoveryCount() >= star.Class {
		return false
	}

	disc := p.RemoveFromHand(p.HandIndex(card.ID))
	star.Attachments = append(star.Attachments, disc)
	t.log(log.NewAttachEvent(t.gs.Turn, t.phase(), p.ID, disc.Name))
	return true
}

func (t *txn) playChainCard(p *PlayerState, card CardInstance, target int) bool {
	gs := t.gs
	opp := gs.Player(Opponent(p.ID))

	switch card.Effect {
	case EffectDarkMatterVoid:
		gs.Decision = &Decision{
			Kind:    DecisionVoidClass,
			Player:  p.ID,
			CardID:  card.ID,
			Options: append([]int(nil), VoidClasses...),
		}
		return true

	case EffectAthena:
		return t.playAthena(p, opp, card, target)

	case EffectSolarEclipse:
		si := p.StarIndex(target)
		if si < 0 || !p.Board[si].Complete() {
			return false
		}

	case EffectPlanetOfLife:
		si := p.StarIndex(target)
		if si < 0 || !p.Board[si].HasAttachment(NameRockyPlanet) {
			return false
		}

	case EffectIgnition:
		si := opp.StarIndex(target)
		if si < 0 || opp.Board[si].Eclipsed() || !opp.Board[si].HasAttachment(NameGasGiant) {
			return false
		}

	default:
		if card.Effect.NeedsTarget() {
			return false
		}
		target = 0
	}

	t.pushChain(p, card.ID, target)
	return true
}

// playAthena accepts either an opposing Star or one of its Discoveries as the
// target. A Star with several Discoveries defers to a decision.
func (t *txn) playAthena(p, opp *PlayerState, card CardInstance, target int) bool {
	if si := opp.StarIndex(target); si >= 0 {
		star := &opp.Board[si]
		if star.Eclipsed() {
			return false
		}
		discs := star.Discoveries()
		switch len(discs) {
		case 0:
			return false
		case 1:
			t.pushChain(p, card.ID, discs[0].ID)
		default:
			ids := make([]int, len(discs))
			for i, d := range discs {
				ids[i] = d.ID
			}
			t.gs.Decision = &Decision{
				Kind:       DecisionDestructionTarget,
				Player:     p.ID,
				CardID:     card.ID,
				TargetID:   star.ID,
				Candidates: ids,
			}
		}
		return true
	}

	owner, si, ai, ok := t.gs.locateAttachment(target)
	if !ok || owner != opp.ID {
		return false
	}
	star := &opp.Board[si]
	if star.Eclipsed() || star.Attachments[ai].Category != CategoryDiscovery {
		return false
	}
	t.pushChain(p, card.ID, target)
	return true
}

// pushChain moves a hand card onto the top of the chain.
func (t *txn) pushChain(p *PlayerState, id, target int) {
	gs := t.gs
	card := p.RemoveFromHand(p.HandIndex(id))
	card.TargetID = target
	gs.Chain = append(gs.Chain, card)
	gs.ChainPending = true
	gs.Phase = PhaseReaction
	t.log(log.NewChainLinkEvent(gs.Turn, t.phase(), p.ID, card.Name))
}
