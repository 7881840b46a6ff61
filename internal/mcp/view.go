package mcp

import "github.com/peterkuimelis/novacana/internal/game"

// StateView is a compact rendering of the game for tool responses. The deck
// and discard pile are reduced to counts.
type StateView struct {
	Turn           int            `json:"turn"`
	Phase          string         `json:"phase"`
	Active         int            `json:"active"`
	Resolving      bool           `json:"resolving,omitempty"`
	DiscardMode    bool           `json:"discard_mode,omitempty"`
	ForbiddenClass int            `json:"forbidden_class,omitempty"`
	DeckCount      int            `json:"deck_count"`
	DiscardCount   int            `json:"discard_count"`
	Chain          []CardView     `json:"chain,omitempty"`
	Decision       *game.Decision `json:"decision,omitempty"`
	Players        []PlayerView   `json:"players"`
}

// PlayerView shows one side of the table.
type PlayerView struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Hand             []CardView `json:"hand"`
	Board            []StarView `json:"board"`
	SystemsCompleted int        `json:"systems_completed"`
	Revealed         bool       `json:"revealed,omitempty"`
}

// CardView describes a single card.
type CardView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Class    int    `json:"class,omitempty"`
	Text     string `json:"text,omitempty"`
	TargetID int    `json:"target_id,omitempty"`
}

// StarView is a deployed Star with its attachments.
type StarView struct {
	CardView
	Attachments []CardView `json:"attachments,omitempty"`
	Complete    bool       `json:"complete"`
	Eclipsed    bool       `json:"eclipsed,omitempty"`
}

func cardView(c game.CardInstance) CardView {
	return CardView{
		ID:       c.ID,
		Name:     c.Name,
		Category: c.Category.String(),
		Class:    c.Class,
		Text:     c.Text,
		TargetID: c.TargetID,
	}
}

func cardViews(cards []game.CardInstance) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = cardView(c)
	}
	return out
}

// BuildStateView renders gs. Both hands are included: the tool surface drives
// a shared seat.
func BuildStateView(gs *game.GameState) *StateView {
	sv := &StateView{
		Turn:           gs.Turn,
		Phase:          gs.Phase.String(),
		Active:         gs.Active,
		Resolving:      gs.Resolving,
		DiscardMode:    gs.DiscardMode,
		ForbiddenClass: gs.ForbiddenClass,
		DeckCount:      len(gs.Deck),
		DiscardCount:   len(gs.Discard),
		Chain:          cardViews(gs.Chain),
		Decision:       gs.Decision,
	}
	for i := range gs.Players {
		p := &gs.Players[i]
		pv := PlayerView{
			ID:               p.ID,
			Name:             p.Name,
			Hand:             cardViews(p.Hand),
			Board:            make([]StarView, 0, len(p.Board)),
			SystemsCompleted: p.SystemsCompleted,
			Revealed:         p.RevealedAt(gs.Turn),
		}
		for j := range p.Board {
			b := &p.Board[j]
			pv.Board = append(pv.Board, StarView{
				CardView:    cardView(b.CardInstance),
				Attachments: cardViews(b.Attachments),
				Complete:    b.Complete(),
				Eclipsed:    b.Eclipsed(),
			})
		}
		sv.Players = append(sv.Players, pv)
	}
	return sv
}
