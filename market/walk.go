package market

import "math/rand"

// Walk is a bounded-increment random walk used as the synthetic price
// source. Each Advance adds a uniform draw from [-jitter, +jitter] to the
// last price. There is no floor: the walk can drift negative, which is
// accepted synthetic-data behavior.
//
// Walk is not safe for concurrent use; callers serialize access.
type Walk struct {
	rng    *rand.Rand
	price  float64
	jitter float64
}

// NewWalk starts a walk at initial with the given half-range jitter.
// The random source is injected so runs can be made deterministic.
func NewWalk(rng *rand.Rand, initial, jitter float64) *Walk {
	return &Walk{rng: rng, price: initial, jitter: jitter}
}

// Advance moves the price by one random step and returns the new price.
func (w *Walk) Advance() float64 {
	w.price += (w.rng.Float64() - 0.5) * 2 * w.jitter
	return w.price
}

// Price returns the current price without advancing.
func (w *Walk) Price() float64 {
	return w.price
}
