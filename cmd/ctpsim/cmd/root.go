package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctpsim",
	Short: "A simulated futures-trading account engine",
	Long: `ctpsim simulates a single futures trading account: a random-walk
price feed on one cadence and a random trader on a slower one, both
driving one account ledger that tracks position, average open price,
realized equity and floating PnL.

It publishes two event streams (equity updates and trade executions)
that the run command prints and optionally journals to CSV or SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logLevel string

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
}
