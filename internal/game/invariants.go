package game

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies that every card of a pool of poolSize instances
// sits in exactly one location and that locations hold legal cards.
func (gs *GameState) CheckInvariants(poolSize int) error {
	var errs []error

	seen := make(map[int]int, poolSize)
	for _, c := range gs.AllCards() {
		seen[c.ID]++
		if c.ID < 1 || c.ID > poolSize {
			errs = append(errs, fmt.Errorf("card %d (%s) is outside the pool", c.ID, c.Name))
		}
	}
	for id, n := range seen {
		if n > 1 {
			errs = append(errs, fmt.Errorf("card %d appears %d times", id, n))
		}
	}
	if len(seen) != poolSize {
		errs = append(errs, fmt.Errorf("pool has %d distinct cards, want %d", len(seen), poolSize))
	}

	if len(gs.Chain) > 0 && gs.Phase != PhaseReaction {
		errs = append(errs, fmt.Errorf("chain holds %d cards outside the Reaction phase", len(gs.Chain)))
	}
	if gs.Phase != PhaseSetup && gs.Active != 1 && gs.Active != 2 {
		errs = append(errs, fmt.Errorf("invalid active player %d", gs.Active))
	}

	for i := range gs.Players {
		p := &gs.Players[i]
		if p.ID != i+1 {
			errs = append(errs, fmt.Errorf("player slot %d holds id %d", i+1, p.ID))
		}
		for _, c := range p.Hand {
			if c.Owner != p.ID {
				errs = append(errs, fmt.Errorf("%s in P%d's hand is owned by %d", c.Name, p.ID, c.Owner))
			}
		}
		for _, b := range p.Board {
			if b.Category != CategoryStar {
				errs = append(errs, fmt.Errorf("%s on P%d's board is not a Star", b.Name, p.ID))
			}
			for _, a := range b.Attachments {
				if a.Category != CategoryDiscovery && !a.Effect.Attachable() {
					errs = append(errs, fmt.Errorf("%s cannot be attached to %s", a.Name, b.Name))
				}
			}
		}
	}

	return errors.Join(errs...)
}
