package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/novacana/internal/game"
)

// Render draws the table from viewer's side. The opponent's hand is shown
// only while it is revealed.
func Render(w io.Writer, gs *game.GameState, viewer int) {
	you := gs.Player(viewer)
	opp := gs.Player(game.Opponent(viewer))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  OPPONENT %s  Hand: %d  Systems: %d/%d\n",
		opp.Name, len(opp.Hand), opp.SystemsCompleted, game.SystemsToWin)
	if opp.RevealedAt(gs.Turn) {
		fmt.Fprintf(w, "║  Revealed: %s\n", formatHand(opp.Hand))
	}
	renderBoard(w, opp)
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	renderBoard(w, you)
	fmt.Fprintf(w, "║  YOU %s  Hand: %d  Systems: %d/%d\n",
		you.Name, len(you.Hand), you.SystemsCompleted, game.SystemsToWin)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", gs.Turn, gs.Phase)
	if gs.Active == viewer {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintf(w, "%s | Deck: %d  Discard: %d\n", turnInfo, len(gs.Deck), len(gs.Discard))

	if gs.ForbiddenClass > 0 {
		fmt.Fprintf(w, "Class %d Stars are forbidden this turn.\n", gs.ForbiddenClass)
	}
	if gs.DiscardMode {
		fmt.Fprintf(w, "Discard down to %d.\n", game.MaxHandSize)
	}
	if len(gs.Chain) > 0 {
		var links []string
		for _, c := range gs.Chain {
			link := fmt.Sprintf("%s (P%d)", c.Name, c.Owner)
			if c.TargetID != 0 {
				link += fmt.Sprintf(" -> %d", c.TargetID)
			}
			links = append(links, link)
		}
		fmt.Fprintf(w, "Chain: %s\n", strings.Join(links, " | "))
	}

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: %s\n", formatHand(you.Hand))
	}
	if d := gs.Decision; d != nil && d.Player == viewer {
		fmt.Fprintln(w, decisionPrompt(gs, d))
	}
}

func renderBoard(w io.Writer, p *game.PlayerState) {
	if len(p.Board) == 0 {
		fmt.Fprintln(w, "║  (no stars)")
		return
	}
	for i := range p.Board {
		b := &p.Board[i]
		status := ""
		if b.Complete() {
			status = " COMPLETE"
		}
		if b.Eclipsed() {
			status += " ECLIPSED"
		}
		line := fmt.Sprintf("║  [%d] %s %d/%d%s", b.ID, b.Name, b.DiscoveryCount(), b.Class, status)
		if len(b.Attachments) > 0 {
			var parts []string
			for _, a := range b.Attachments {
				parts = append(parts, fmt.Sprintf("[%d] %s", a.ID, a.Name))
			}
			line += " <- " + strings.Join(parts, ", ")
		}
		fmt.Fprintln(w, line)
	}
}

func formatHand(hand []game.CardInstance) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		label := c.Category.String()
		if c.Category == game.CategoryStar && c.Class > 0 {
			label = fmt.Sprintf("Star %d", c.Class)
		}
		parts[i] = fmt.Sprintf("[%d] %s (%s)", c.ID, c.Name, label)
	}
	return strings.Join(parts, "  ")
}

func decisionPrompt(gs *game.GameState, d *game.Decision) string {
	switch d.Kind {
	case game.DecisionCompleteSystem:
		return fmt.Sprintf("Deploy as a complete system with %d Discoveries from hand? (yes/no)", len(d.Compatible))
	case game.DecisionProtoStar:
		return "Proto-Star: draw 2 cards or search for a White Dwarf? (draw/search)"
	case game.DecisionVoidClass:
		opts := make([]string, len(d.Options))
		for i, o := range d.Options {
			opts[i] = fmt.Sprint(o)
		}
		return fmt.Sprintf("Name a class to forbid: %s (class <n>)", strings.Join(opts, " "))
	case game.DecisionDestructionTarget:
		var opts []string
		for _, id := range d.Candidates {
			opts = append(opts, fmt.Sprintf("[%d] %s", id, cardName(gs, id)))
		}
		return fmt.Sprintf("Choose a Discovery to destroy: %s (pick <id>)", strings.Join(opts, ", "))
	default:
		return string(d.Kind)
	}
}

func cardName(gs *game.GameState, id int) string {
	for _, c := range gs.AllCards() {
		if c.ID == id {
			return c.Name
		}
	}
	return "?"
}
