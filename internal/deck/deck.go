package deck

import "math/rand"

// Shuffle returns a uniformly random permutation of pool. pool is not modified.
func Shuffle[T any](r *rand.Rand, pool []T) []T {
	out := make([]T, len(pool))
	copy(out, pool)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deck is a replenishing draw pile over a fixed pool. When the pile runs out
// a fresh shuffled copy of the whole pool replaces it, so Draw never fails.
// A Deck is not safe for concurrent use.
type Deck[T any] struct {
	pool       []T
	cards      []T
	rng        *rand.Rand
	reshuffles int
}

// New panics on an empty pool: pools are validated before any room exists.
func New[T any](pool []T, r *rand.Rand) *Deck[T] {
	if len(pool) == 0 {
		panic("deck: empty pool")
	}
	return &Deck[T]{pool: pool, rng: r, cards: Shuffle(r, pool)}
}

// Draw pops the top card, reshuffling the pool first if the pile is empty.
func (d *Deck[T]) Draw() T {
	if len(d.cards) == 0 {
		d.cards = Shuffle(d.rng, d.pool)
		d.reshuffles++
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c
}

// Reset discards the pile and starts over from a fresh shuffle.
func (d *Deck[T]) Reset() {
	d.cards = Shuffle(d.rng, d.pool)
}

func (d *Deck[T]) Len() int { return len(d.cards) }

// Reshuffles counts how many times an exhausted pile was replenished.
func (d *Deck[T]) Reshuffles() int { return d.reshuffles }
