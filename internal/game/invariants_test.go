package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInvariants(t *testing.T) {
	pool := DefaultCatalog().PoolSize()

	t.Run("duplicate", func(t *testing.T) {
		_, gs, _ := newTestGame(t)
		gs.Discard = append(gs.Discard, gs.Deck[0])
		err := gs.CheckInvariants(pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "appears 2 times")
	})

	t.Run("missing", func(t *testing.T) {
		_, gs, _ := newTestGame(t)
		gs.Deck = gs.Deck[1:]
		err := gs.CheckInvariants(pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "distinct cards")
	})

	t.Run("chain outside reaction", func(t *testing.T) {
		_, gs, _ := newTestGame(t)
		card, _ := gs.findInDeck("Pulsar")
		gs.Chain = append(gs.Chain, card)
		err := gs.CheckInvariants(pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside the Reaction phase")
	})

	t.Run("non-star on board", func(t *testing.T) {
		_, gs, _ := newTestGame(t)
		card, _ := gs.findInDeck("Comet")
		gs.Player(1).Board = append(gs.Player(1).Board, BoardCard{CardInstance: card})
		err := gs.CheckInvariants(pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a Star")
	})

	t.Run("hand owner", func(t *testing.T) {
		_, gs, _ := newTestGame(t)
		card, _ := gs.takeFromDeck()
		gs.Player(2).Hand = append(gs.Player(2).Hand, card)
		err := gs.CheckInvariants(pool)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owned by 0")
	})
}

func TestStrictEnginePanicsOnCorruptState(t *testing.T) {
	e, gs, _ := newTestGame(t)
	gs.Discard = append(gs.Discard, gs.Deck[0])
	assert.Panics(t, func() { e.Apply(gs, AdvanceIntent(0)) })
}

func TestInvalidPlayerIDPanics(t *testing.T) {
	gs := NewGameState()
	assert.Panics(t, func() { gs.Player(3) })
	assert.Panics(t, func() { gs.Player(0) })
	assert.Panics(t, func() { Opponent(0) })
	assert.Equal(t, 2, Opponent(1))
}

// candidateIntents lists every intent worth trying from the current state.
// Most of them will be rejected.
func candidateIntents(gs *GameState) []Intent {
	if d := gs.Decision; d != nil {
		out := []Intent{
			CancelIntent(d.Player),
			AnswerIntent(d.Player, Answer{Accept: true}),
			AnswerIntent(d.Player, Answer{Accept: false}),
			AnswerIntent(d.Player, Answer{Choice: ProtoDraw}),
			AnswerIntent(d.Player, Answer{Choice: ProtoSearch}),
		}
		for _, c := range d.Options {
			out = append(out, AnswerIntent(d.Player, Answer{Class: c}))
		}
		for _, id := range d.Candidates {
			out = append(out, AnswerIntent(d.Player, Answer{TargetID: id}))
		}
		return out
	}

	targets := []int{0}
	for i := range gs.Players {
		for _, b := range gs.Players[i].Board {
			targets = append(targets, b.ID)
			for _, a := range b.Attachments {
				targets = append(targets, a.ID)
			}
		}
	}

	var out []Intent
	for id := 1; id <= 2; id++ {
		out = append(out, AdvanceIntent(id))
		for _, c := range gs.Player(id).Hand {
			out = append(out, DiscardIntent(id, c.ID))
			for _, target := range targets {
				out = append(out, PlayIntent(id, c.ID, target))
			}
		}
	}
	return out
}

func TestRandomPlayConservesCards(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		e, _ := newTestEngine(t)
		gs := e.NewGame("Alice", "Bob")
		rng := rand.New(rand.NewSource(seed))

		for move := 0; move < 400 && !gs.Over(); move++ {
			if gs.Resolving {
				gs = e.Drain(gs)
				requireConserved(t, gs)
				continue
			}

			cands := candidateIntents(gs)
			rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
			accepted := false
			for _, in := range cands {
				next, ok := e.Apply(gs, in)
				if ok {
					gs, accepted = next, true
					break
				}
			}
			require.True(t, accepted, "seed %d move %d: no legal intent", seed, move)
			requireConserved(t, gs)
		}
	}
}
