package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ctpsim/config"
	"ctpsim/internal/logging"
	"ctpsim/journal"
	"ctpsim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Long: `Run the account simulation until the duration elapses or an
interrupt arrives. Equity and trade events stream to stdout; a journal
backend can record them as configured.

Example:
  ctpsim run --config examples/configs/basic.yaml --duration 1m`,
	RunE: runRun,
}

var (
	runConfigPath string
	runDuration   time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON); defaults apply when omitted")
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "how long to run (0 = until interrupted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	engine, err := sim.New(opts, log)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	fmt.Printf("Simulating %s  capital=%.2f  price=%.2f  ticks=%s/%s\n\n",
		opts.Symbol, opts.InitialCapital, opts.InitialPrice,
		opts.PriceInterval, opts.TradeInterval)

	equityCh := engine.SubscribeEquity(0)
	tradeCh := engine.SubscribeTrades(0)

	go func() {
		for p := range equityCh {
			fmt.Printf("%s  equity=%12.2f  floating=%10.2f\n",
				p.Time.Format("15:04:05"), p.Equity, p.FloatingPnL)
			if err := j.RecordEquity(p); err != nil {
				fmt.Fprintf(os.Stderr, "journal equity: %v\n", err)
			}
		}
	}()

	go func() {
		for p := range tradeCh {
			action := "OPEN "
			if p.IsClose {
				action = "CLOSE"
			}
			fmt.Printf("%s  %s %s %d @ %.2f  pnl=%10.2f  equity=%12.2f\n",
				p.Time.Format("15:04:05"), action, p.Direction, p.Volume, p.Price, p.PnL, p.Equity)
			if err := j.RecordTrade(p); err != nil {
				fmt.Fprintf(os.Stderr, "journal trade: %v\n", err)
			}
		}
	}()

	engine.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	if runDuration > 0 {
		select {
		case <-time.After(runDuration):
		case <-interrupt:
		}
	} else {
		<-interrupt
	}

	engine.Stop()

	// The engine publishes nothing after Stop; give the consumers a
	// moment to drain what is buffered before printing the summary.
	for len(equityCh) > 0 || len(tradeCh) > 0 {
		time.Sleep(10 * time.Millisecond)
	}

	position, avgOpen, equity, floating := engine.Snapshot()
	fmt.Printf("\nFinal Results:\n")
	fmt.Printf("  Position: %d", position)
	if position != 0 {
		fmt.Printf(" @ %.2f", avgOpen)
	}
	fmt.Println()
	fmt.Printf("  Realized Equity: %.2f\n", equity)
	fmt.Printf("  Floating PnL: %.2f\n", floating)
	fmt.Printf("  Total Equity: %.2f\n", equity+floating)
	fmt.Printf("  Net PnL: %.2f\n", equity+floating-opts.InitialCapital)

	return nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.Discard{}, nil
	}
}
