package game

import "math/rand"

// BuildDeck expands the catalog into unowned instances with ids 1..N and
// shuffles them with rng.
func BuildDeck(c *Catalog, rng *rand.Rand) []CardInstance {
	deck := make([]CardInstance, 0, c.PoolSize())
	id := 1
	for _, def := range c.cards {
		for i := 0; i < def.Copies; i++ {
			deck = append(deck, newInstance(id, def))
			id++
		}
	}
	shuffle(rng, deck)
	return deck
}

// shuffle is a Fisher–Yates permutation.
func shuffle(rng *rand.Rand, cards []CardInstance) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
