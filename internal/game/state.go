package game

import (
	"fmt"
	"slices"
)

// CardInstance is a concrete copy of a card definition.
type CardInstance struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Subtype  string   `json:"subtype,omitempty"`
	Class    int      `json:"class,omitempty"`
	Text     string   `json:"text"`
	Effect   Effect   `json:"effect"`
	Owner    int      `json:"owner"`
	TargetID int      `json:"target_id,omitempty"`
}

func newInstance(id int, def CardDefinition) CardInstance {
	return CardInstance{
		ID:       id,
		Name:     def.Name,
		Category: def.Category,
		Subtype:  def.Subtype,
		Class:    def.Class,
		Text:     def.Text,
		Effect:   def.Effect,
	}
}

// BoardCard is a deployed Star with its attachments.
type BoardCard struct {
	CardInstance
	Attachments []CardInstance `json:"attachments"`
}

// DiscoveryCount counts Discovery attachments.
func (b *BoardCard) DiscoveryCount() int {
	n := 0
	for _, a := range b.Attachments {
		if a.Category == CategoryDiscovery {
			n++
		}
	}
	return n
}

// Complete reports whether the Star has as many Discoveries as its class.
func (b *BoardCard) Complete() bool {
	return b.Class > 0 && b.DiscoveryCount() >= b.Class
}

// Eclipsed reports whether a Solar Eclipse is attached.
func (b *BoardCard) Eclipsed() bool {
	for _, a := range b.Attachments {
		if a.Effect == EffectSolarEclipse {
			return true
		}
	}
	return false
}

// HasAttachment reports whether an attachment with the given name is present.
func (b *BoardCard) HasAttachment(name string) bool {
	return b.attachmentIndex(func(c CardInstance) bool { return c.Name == name }) >= 0
}

func (b *BoardCard) attachmentIndex(match func(CardInstance) bool) int {
	return slices.IndexFunc(b.Attachments, match)
}

// Discoveries returns the Discovery attachments in order.
func (b *BoardCard) Discoveries() []CardInstance {
	var out []CardInstance
	for _, a := range b.Attachments {
		if a.Category == CategoryDiscovery {
			out = append(out, a)
		}
	}
	return out
}

// PlayerState holds one player's hand and board.
type PlayerState struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	Hand             []CardInstance `json:"hand"`
	Board            []BoardCard    `json:"board"`
	SystemsCompleted int            `json:"systems_completed"`
	RevealedUntil    int            `json:"revealed_until"`
}

// HandIndex returns the hand position of a card id, or -1.
func (p *PlayerState) HandIndex(id int) int {
	return slices.IndexFunc(p.Hand, func(c CardInstance) bool { return c.ID == id })
}

// RemoveFromHand takes the card at index i out of the hand.
func (p *PlayerState) RemoveFromHand(i int) CardInstance {
	card := p.Hand[i]
	p.Hand = slices.Delete(p.Hand, i, i+1)
	return card
}

// AddToHand stamps ownership and appends to the hand.
func (p *PlayerState) AddToHand(card CardInstance) {
	card.Owner = p.ID
	card.TargetID = 0
	p.Hand = append(p.Hand, card)
}

// StarIndex returns the board position of a Star id, or -1.
func (p *PlayerState) StarIndex(id int) int {
	return slices.IndexFunc(p.Board, func(b BoardCard) bool { return b.ID == id })
}

// CountInHand counts hand cards of a category.
func (p *PlayerState) CountInHand(cat Category) int {
	n := 0
	for _, c := range p.Hand {
		if c.Category == cat {
			n++
		}
	}
	return n
}

// RevealedAt reports whether the hand is visible to the opponent on the given turn.
func (p *PlayerState) RevealedAt(turn int) bool {
	return p.RevealedUntil > 0 && turn <= p.RevealedUntil
}

// Decision is the single outstanding suspension point.
type Decision struct {
	Kind       DecisionKind `json:"kind"`
	Player     int          `json:"player"`
	CardID     int          `json:"card_id"`
	TargetID   int          `json:"target_id,omitempty"`
	Candidates []int        `json:"candidates,omitempty"`
	Compatible []int        `json:"compatible,omitempty"`
	Options    []int        `json:"options,omitempty"`
}

// GameState is the whole game. Engine transitions never mutate a state they
// were handed; they clone it first.
type GameState struct {
	Deck           []CardInstance `json:"deck"`    // head is the top
	Discard        []CardInstance `json:"discard"` // most recent first
	Players        [2]PlayerState `json:"players"`
	Active         int            `json:"active"`
	Turn           int            `json:"turn"`
	Phase          Phase          `json:"phase"`
	Chain          []CardInstance `json:"chain"` // tail is the top
	ChainPending   bool           `json:"chain_pending"`
	Decision       *Decision      `json:"decision,omitempty"`
	ForbiddenClass int            `json:"forbidden_class,omitempty"`
	Winner         int            `json:"winner,omitempty"`
	VictoryReason  string         `json:"victory_reason,omitempty"`
	Log            []string       `json:"log"`

	Resolving       bool     `json:"resolving"`
	ResolvingID     int      `json:"resolving_id,omitempty"`
	Resolved        []string `json:"resolved,omitempty"`
	DiscardMode     bool     `json:"discard_mode"`
	SuppressRecycle bool     `json:"suppress_recycle,omitempty"`
}

// NewGameState returns an empty state in Setup phase.
func NewGameState() *GameState {
	return &GameState{
		Players: [2]PlayerState{{ID: 1}, {ID: 2}},
		Phase:   PhaseSetup,
	}
}

// Player returns the state for player id 1 or 2. Any other id is an engine defect.
func (gs *GameState) Player(id int) *PlayerState {
	if id != 1 && id != 2 {
		panic(fmt.Sprintf("invalid player id %d", id))
	}
	return &gs.Players[id-1]
}

// Opponent returns the id of the other player.
func Opponent(id int) int {
	if id != 1 && id != 2 {
		panic(fmt.Sprintf("invalid player id %d", id))
	}
	return 3 - id
}

// ActivePlayer returns the active player's state.
func (gs *GameState) ActivePlayer() *PlayerState {
	return gs.Player(gs.Active)
}

// Over reports whether a winner has been decided.
func (gs *GameState) Over() bool {
	return gs.Winner != 0
}

// TopOfChain returns the most recently pushed chain entry.
func (gs *GameState) TopOfChain() (CardInstance, bool) {
	if len(gs.Chain) == 0 {
		return CardInstance{}, false
	}
	return gs.Chain[len(gs.Chain)-1], true
}

func (gs *GameState) popChain() CardInstance {
	top := gs.Chain[len(gs.Chain)-1]
	gs.Chain = gs.Chain[:len(gs.Chain)-1]
	return top
}

// sendToDiscard prepends a card to the discard pile.
func (gs *GameState) sendToDiscard(card CardInstance) {
	card.TargetID = 0
	gs.Discard = slices.Insert(gs.Discard, 0, card)
}

// returnToDeck resets ownership before a card re-enters the deck.
func returnToDeck(cards []CardInstance) []CardInstance {
	for i := range cards {
		cards[i].Owner = 0
		cards[i].TargetID = 0
	}
	return cards
}

// takeFromDeck removes and returns the top card.
func (gs *GameState) takeFromDeck() (CardInstance, bool) {
	if len(gs.Deck) == 0 {
		return CardInstance{}, false
	}
	card := gs.Deck[0]
	gs.Deck = gs.Deck[1:]
	return card, true
}

// findInDeck removes and returns the first deck card with the given name.
func (gs *GameState) findInDeck(name string) (CardInstance, bool) {
	i := slices.IndexFunc(gs.Deck, func(c CardInstance) bool { return c.Name == name })
	if i < 0 {
		return CardInstance{}, false
	}
	card := gs.Deck[i]
	gs.Deck = slices.Delete(gs.Deck, i, i+1)
	return card, true
}

// locateStar finds a Star id on either board.
func (gs *GameState) locateStar(id int) (owner int, idx int, ok bool) {
	for p := 1; p <= 2; p++ {
		if i := gs.Player(p).StarIndex(id); i >= 0 {
			return p, i, true
		}
	}
	return 0, -1, false
}

// locateAttachment finds an attachment id on either board.
func (gs *GameState) locateAttachment(id int) (owner, star, idx int, ok bool) {
	for p := 1; p <= 2; p++ {
		pl := gs.Player(p)
		for si := range pl.Board {
			if ai := pl.Board[si].attachmentIndex(func(c CardInstance) bool { return c.ID == id }); ai >= 0 {
				return p, si, ai, true
			}
		}
	}
	return 0, -1, -1, false
}

// handOwner returns the player whose hand holds the card, or 0.
func (gs *GameState) handOwner(id int) int {
	for p := 1; p <= 2; p++ {
		if gs.Player(p).HandIndex(id) >= 0 {
			return p
		}
	}
	return 0
}

// Clone returns a deep copy.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Deck = slices.Clone(gs.Deck)
	c.Discard = slices.Clone(gs.Discard)
	c.Chain = slices.Clone(gs.Chain)
	c.Log = slices.Clone(gs.Log)
	c.Resolved = slices.Clone(gs.Resolved)
	for i := range c.Players {
		p := &c.Players[i]
		p.Hand = slices.Clone(gs.Players[i].Hand)
		p.Board = make([]BoardCard, len(gs.Players[i].Board))
		for j, b := range gs.Players[i].Board {
			b.Attachments = slices.Clone(b.Attachments)
			p.Board[j] = b
		}
		if gs.Players[i].Board == nil {
			p.Board = nil
		}
	}
	if gs.Decision != nil {
		d := *gs.Decision
		d.Candidates = slices.Clone(d.Candidates)
		d.Compatible = slices.Clone(d.Compatible)
		d.Options = slices.Clone(d.Options)
		c.Decision = &d
	}
	return &c
}

// AllCards lists every card instance in every location.
func (gs *GameState) AllCards() []CardInstance {
	var out []CardInstance
	out = append(out, gs.Deck...)
	out = append(out, gs.Discard...)
	out = append(out, gs.Chain...)
	for i := range gs.Players {
		p := &gs.Players[i]
		out = append(out, p.Hand...)
		for _, b := range p.Board {
			out = append(out, b.CardInstance)
			out = append(out, b.Attachments...)
		}
	}
	return out
}
