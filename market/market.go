package market

import "fmt"

// Direction is the side of a trade.
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	if d == Buy {
		return "Buy"
	}
	return "Sell"
}

// Sign returns +1 for Buy and -1 for Sell, the sign a filled volume
// contributes to a signed position.
func (d Direction) Sign() int {
	if d == Buy {
		return 1
	}
	return -1
}

// ParseDirection converts the journal/CSV representation back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Buy":
		return Buy, nil
	case "Sell":
		return Sell, nil
	}
	return Buy, fmt.Errorf("unknown direction %q", s)
}

// Instrument describes one synthetic futures contract.
type Instrument struct {
	Symbol string

	// Multiplier is the contract multiplier: currency value of one full
	// price point per contract.
	Multiplier float64
}

// Instruments is the roster of simulated contracts. The simulator trades
// exactly one of them per run.
var Instruments = map[string]Instrument{
	"IF2401": {Symbol: "IF2401", Multiplier: 10},
	"IC2401": {Symbol: "IC2401", Multiplier: 10},
	"IH2401": {Symbol: "IH2401", Multiplier: 10},
}

// DefaultSymbol is the contract traded when the config does not name one.
const DefaultSymbol = "IF2401"
