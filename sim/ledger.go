package sim

import (
	"fmt"
	"time"

	"ctpsim/market"
)

// Ledger is the single account ledger of the simulation. It holds the
// signed position, volume-weighted average open price, realized equity and
// the floating PnL of the open position, and applies price changes and
// trades against them.
//
// Ledger does no locking of its own; the Engine serializes every call.
type Ledger struct {
	lastPrice    float64
	position     int // >0 long, <0 short, 0 flat
	avgOpenPrice float64
	equity       float64 // realized; excludes floating PnL
	floatingPnL  float64
	multiplier   float64
}

// NewLedger creates a flat ledger with the given starting capital and
// contract multiplier.
func NewLedger(capital, multiplier float64) *Ledger {
	return &Ledger{equity: capital, multiplier: multiplier}
}

func (l *Ledger) Position() int         { return l.position }
func (l *Ledger) AvgOpenPrice() float64 { return l.avgOpenPrice }
func (l *Ledger) Equity() float64       { return l.equity }
func (l *Ledger) FloatingPnL() float64  { return l.floatingPnL }
func (l *Ledger) LastPrice() float64    { return l.lastPrice }

// TotalEquity is realized equity plus floating PnL: the mark-to-market
// account value.
func (l *Ledger) TotalEquity() float64 { return l.equity + l.floatingPnL }

// ApplyPriceChange marks the open position at price and returns the
// resulting equity snapshot. Flat positions carry zero floating PnL.
func (l *Ledger) ApplyPriceChange(price float64, at time.Time) EquityPoint {
	l.lastPrice = price
	l.mark(price)

	return EquityPoint{
		Time:        at,
		Equity:      l.TotalEquity(),
		FloatingPnL: l.floatingPnL,
	}
}

// ApplyTrade applies one fill at price and returns the realized PnL
// (0 for a pure open or add).
//
// A close whose volume exceeds the absolute position is a defect in the
// caller, not a market condition, and is rejected rather than clamped.
// Opens against an opposite position larger than it reverse: the overlap
// closes at the old average price and the remainder opens fresh at price.
func (l *Ledger) ApplyTrade(dir market.Direction, volume int, price float64, isClose bool) (float64, error) {
	if volume <= 0 {
		return 0, fmt.Errorf("apply trade: volume must be positive, got %d", volume)
	}
	if isClose && volume > abs(l.position) {
		return 0, fmt.Errorf("apply trade: close volume %d exceeds position %d", volume, abs(l.position))
	}

	l.lastPrice = price

	var pnl float64
	switch {
	case l.position == 0:
		l.avgOpenPrice = price
		l.position = dir.Sign() * volume

	case sameDirection(l.position, dir):
		held := abs(l.position)
		l.avgOpenPrice = (l.avgOpenPrice*float64(held) + price*float64(volume)) / float64(held+volume)
		l.position += dir.Sign() * volume

	case volume <= abs(l.position):
		pnl = l.closePnL(dir, volume, price)
		l.equity += pnl
		l.position += dir.Sign() * volume
		if l.position == 0 {
			l.avgOpenPrice = 0
		}

	default:
		// Reversal: close the whole position, open the remainder the
		// other way at the execution price.
		closeVolume := abs(l.position)
		pnl = l.closePnL(dir, closeVolume, price)
		l.equity += pnl
		l.position = dir.Sign() * (volume - closeVolume)
		l.avgOpenPrice = price
	}

	l.mark(price)
	return pnl, nil
}

// closePnL realizes volume contracts against the current average open
// price. A Buy closes a short, so it profits when price fell below entry;
// a Sell closes a long and profits when price rose.
func (l *Ledger) closePnL(dir market.Direction, volume int, price float64) float64 {
	sign := 1.0
	if dir == market.Buy {
		sign = -1.0
	}
	return (price - l.avgOpenPrice) * sign * float64(volume) * l.multiplier
}

// mark recomputes floating PnL at price. Zero when flat, which keeps the
// flat-position invariant across full closes.
func (l *Ledger) mark(price float64) {
	if l.position == 0 {
		l.floatingPnL = 0
		return
	}
	l.floatingPnL = (price - l.avgOpenPrice) * float64(l.position) * l.multiplier
}

func sameDirection(position int, dir market.Direction) bool {
	return (position > 0 && dir == market.Buy) || (position < 0 && dir == market.Sell)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
