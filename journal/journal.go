package journal

import "ctpsim/sim"

// Journal records the two event streams the engine publishes. Backends
// are append-only; nothing the engine does reads them back during a run.
type Journal interface {
	RecordTrade(sim.TradePoint) error
	RecordEquity(sim.EquityPoint) error
	Close() error
}

// Discard is a Journal that drops everything, for runs that only want
// console output.
type Discard struct{}

func (Discard) RecordTrade(sim.TradePoint) error   { return nil }
func (Discard) RecordEquity(sim.EquityPoint) error { return nil }
func (Discard) Close() error                       { return nil }
