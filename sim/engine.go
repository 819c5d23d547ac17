package sim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"ctpsim/market"
	"ctpsim/pkg/id"
)

// Defaults mirror the original mock CTP service.
const (
	DefaultInitialPrice     = 3500.0
	DefaultInitialCapital   = 100000.0
	DefaultPriceInterval    = time.Second
	DefaultTradeInterval    = 10 * time.Second
	DefaultPriceJitter      = 5.0
	DefaultCloseProbability = 0.7
	DefaultMaxTradeVolume   = 4
)

// Options configures an Engine. Zero values are rejected; use
// DefaultOptions as a starting point.
type Options struct {
	Symbol         string
	InitialPrice   float64
	InitialCapital float64

	PriceInterval time.Duration // equity cadence
	TradeInterval time.Duration // trade cadence

	PriceJitter      float64 // half-range of one price step
	CloseProbability float64
	MaxTradeVolume   int

	// Seed makes the run deterministic when non-zero.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Symbol:           market.DefaultSymbol,
		InitialPrice:     DefaultInitialPrice,
		InitialCapital:   DefaultInitialCapital,
		PriceInterval:    DefaultPriceInterval,
		TradeInterval:    DefaultTradeInterval,
		PriceJitter:      DefaultPriceJitter,
		CloseProbability: DefaultCloseProbability,
		MaxTradeVolume:   DefaultMaxTradeVolume,
	}
}

func (o Options) validate() error {
	if _, ok := market.Instruments[o.Symbol]; !ok {
		return fmt.Errorf("unknown instrument: %s", o.Symbol)
	}
	if o.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %g", o.InitialCapital)
	}
	if o.InitialPrice <= 0 {
		return fmt.Errorf("initial price must be positive, got %g", o.InitialPrice)
	}
	if o.PriceInterval <= 0 {
		return fmt.Errorf("price interval must be positive, got %s", o.PriceInterval)
	}
	if o.TradeInterval <= 0 {
		return fmt.Errorf("trade interval must be positive, got %s", o.TradeInterval)
	}
	if o.PriceJitter <= 0 {
		return fmt.Errorf("price jitter must be positive, got %g", o.PriceJitter)
	}
	if o.CloseProbability < 0 || o.CloseProbability > 1 {
		return fmt.Errorf("close probability must be in [0,1], got %g", o.CloseProbability)
	}
	if o.MaxTradeVolume < 1 {
		return fmt.Errorf("max trade volume must be at least 1, got %d", o.MaxTradeVolume)
	}
	return nil
}

// Engine runs the simulation: a price walk on the equity cadence and a
// random trader on the trade cadence, both mutating one ledger under one
// lock and publishing to the two event streams.
type Engine struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex // guards ledger, walk, decider
	ledger  *Ledger
	walk    *market.Walk
	decider *Decider

	equityStream stream[EquityPoint]
	tradeStream  stream[TradePoint]

	runMu   sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New validates opts and builds a stopped engine. The logger may be nil.
func New(opts Options, log *zap.Logger) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("engine options: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	instr := market.Instruments[opts.Symbol]

	return &Engine{
		opts:    opts,
		log:     log,
		ledger:  NewLedger(opts.InitialCapital, instr.Multiplier),
		walk:    market.NewWalk(rand.New(rand.NewSource(seed)), opts.InitialPrice, opts.PriceJitter),
		decider: NewDecider(rand.New(rand.NewSource(seed+1)), opts.CloseProbability, opts.MaxTradeVolume),
	}, nil
}

// SubscribeEquity registers for one EquityPoint per price tick, in tick
// order. buffer <= 0 selects a default depth. A subscriber that falls
// behind its buffer loses points; it never delays the engine.
func (e *Engine) SubscribeEquity(buffer int) <-chan EquityPoint {
	return e.equityStream.subscribe(buffer)
}

// SubscribeTrades registers for one TradePoint per trade tick.
func (e *Engine) SubscribeTrades(buffer int) <-chan TradePoint {
	return e.tradeStream.subscribe(buffer)
}

// Start begins both cadences from now. Starting a running engine is a
// no-op.
func (e *Engine) Start() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.running {
		return
	}
	e.running = true
	e.stop = make(chan struct{})

	e.wg.Add(2)
	go e.priceLoop(e.stop)
	go e.tradeLoop(e.stop)

	e.log.Info("engine started",
		zap.String("symbol", e.opts.Symbol),
		zap.Duration("price_interval", e.opts.PriceInterval),
		zap.Duration("trade_interval", e.opts.TradeInterval),
	)
}

// Stop halts both cadences. An in-flight tick completes, but once Stop
// returns no further points are published. Stopping a stopped engine is a
// no-op; a later Start resumes fresh without replaying missed ticks.
func (e *Engine) Stop() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if !e.running {
		return
	}
	close(e.stop)
	e.wg.Wait()
	e.running = false

	e.log.Info("engine stopped")
}

func (e *Engine) priceLoop(stop <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.opts.PriceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			e.equityStream.publish(e.priceTick(now))
		}
	}
}

func (e *Engine) tradeLoop(stop <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.opts.TradeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			pt, err := e.tradeTick(now)
			if err != nil {
				// Intents are clamped before they reach the ledger, so
				// an error here is a defect to surface, not a tick to
				// patch up silently.
				e.log.Error("trade tick aborted", zap.Error(err))
				continue
			}
			e.tradeStream.publish(pt)
		}
	}
}

// priceTick advances the walk and re-marks the ledger as one atomic unit.
func (e *Engine) priceTick(now time.Time) EquityPoint {
	e.mu.Lock()
	defer e.mu.Unlock()

	price := e.walk.Advance()
	pt := e.ledger.ApplyPriceChange(price, now)

	e.log.Debug("price tick",
		zap.Float64("price", price),
		zap.Float64("equity", pt.Equity),
		zap.Float64("floating_pnl", pt.FloatingPnL),
	)
	return pt
}

// tradeTick decides and applies one trade as one atomic unit.
func (e *Engine) tradeTick(now time.Time) (TradePoint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	intent := e.decider.Decide(e.ledger.Position())
	price := e.walk.Price()

	pnl, err := e.ledger.ApplyTrade(intent.Direction, intent.Volume, price, intent.IsClose)
	if err != nil {
		return TradePoint{}, err
	}

	pt := TradePoint{
		ID:        id.New(),
		Symbol:    e.opts.Symbol,
		Time:      now,
		Equity:    e.ledger.TotalEquity(),
		Price:     price,
		Volume:    intent.Volume,
		Direction: intent.Direction,
		IsClose:   intent.IsClose,
		PnL:       pnl,
	}

	e.log.Debug("trade tick",
		zap.String("trade_id", pt.ID),
		zap.String("direction", pt.Direction.String()),
		zap.Int("volume", pt.Volume),
		zap.Bool("is_close", pt.IsClose),
		zap.Float64("pnl", pt.PnL),
		zap.Int("position", e.ledger.Position()),
	)
	return pt, nil
}

// Snapshot returns the current ledger values for display. It does not
// disturb the cadences.
func (e *Engine) Snapshot() (position int, avgOpen, equity, floating float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Position(), e.ledger.AvgOpenPrice(), e.ledger.Equity(), e.ledger.FloatingPnL()
}
