package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/persist"
)

var flagTideLimit int

var tidesCmd = &cobra.Command{
	Use:   "tides",
	Short: "Show recent black tides from the ledger",
	Long: `List the most recent black tides recorded in the tide ledger, newest
first.

Examples:
  amphoreus tides
  amphoreus tides --limit 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Ledger.Driver == "" {
			return fmt.Errorf("tide ledger disabled ([ledger].driver is empty)")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		ledger, err := persist.Open(ctx, cfg.Ledger, zap.NewNop())
		if err != nil {
			return fmt.Errorf("tide ledger: %w", err)
		}
		defer func() { err = multierr.Append(err, ledger.Close()) }()

		tides, err := ledger.Recent(ctx, flagTideLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tides) == 0 {
			fmt.Fprintln(out, "No black tides recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "%8s %10s %12s %9s %8s %8s  %s\n", "CYCLE", "POPULATION", "ARENA", "RETAINED", "TRAUMA", "BYPASSED", "AT")
		for _, t := range tides {
			fmt.Fprintf(out, "%8d %10d %12d %9d %8.3f %8d  %s\n",
				t.Cycle, t.Population, t.ArenaOffset, t.RetainedCycles, t.Trauma, t.BypassedTicks,
				t.At.Local().Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	tidesCmd.Flags().IntVar(&flagTideLimit, "limit", 10, "Number of tides to show")
}
