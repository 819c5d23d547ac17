package sim

import (
	"math/rand"

	"ctpsim/market"
)

// Intent is one trade decision, already clamped so the ledger can apply
// it without correction.
type Intent struct {
	Direction market.Direction
	Volume    int
	IsClose   bool
}

// Decider produces random trade intents on the trade cadence. With an open
// position it closes with probability closeProb; flat it always opens.
// The random source is injected for deterministic tests.
type Decider struct {
	rng       *rand.Rand
	closeProb float64
	maxVolume int
}

func NewDecider(rng *rand.Rand, closeProb float64, maxVolume int) *Decider {
	return &Decider{rng: rng, closeProb: closeProb, maxVolume: maxVolume}
}

// Decide picks the next trade for the given signed position.
func (d *Decider) Decide(position int) Intent {
	isClose := position != 0 && d.rng.Float64() < d.closeProb
	volume := d.rng.Intn(d.maxVolume) + 1

	if isClose {
		dir := market.Buy
		if position > 0 {
			dir = market.Sell
		}
		// A close never exceeds the held volume.
		if held := abs(position); volume > held {
			volume = held
		}
		return Intent{Direction: dir, Volume: volume, IsClose: true}
	}

	dir := market.Sell
	if d.rng.Float64() > 0.5 {
		dir = market.Buy
	}
	// Opens are unclamped: exceeding an opposite position reverses it.
	return Intent{Direction: dir, Volume: volume, IsClose: false}
}
