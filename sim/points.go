package sim

import (
	"time"

	"ctpsim/market"
)

// EquityPoint is a mark-to-market snapshot emitted on every price tick.
// Points are values: immutable once published.
type EquityPoint struct {
	Time        time.Time
	Equity      float64 // realized equity + floating PnL
	FloatingPnL float64
}

// TradePoint describes one executed trade, emitted on every trade tick.
type TradePoint struct {
	ID        string // time-sortable trade identifier
	Symbol    string
	Time      time.Time
	Equity    float64 // post-trade total equity
	Price     float64 // execution price
	Volume    int
	Direction market.Direction
	IsClose   bool
	PnL       float64 // realized PnL of this trade; 0 for a pure open
}
