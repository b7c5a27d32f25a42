package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amphoreus/sim/internal/data"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List seed presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := data.LoadPresetTable(cfg.Seed.PresetsFile)
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s %9s %7s %7s %10s  %s\n", "NAME", "CITIZENS", "TITANS", "HEIRS", "POPULATION", "DESCRIPTION")
		for _, p := range table.All() {
			fmt.Fprintf(out, "%-12s %9d %7d %7d %10d  %s\n",
				p.Name, p.Seed.Citizens, p.Seed.Titans, p.Seed.ChrysosHeirs, p.Seed.Population(), p.Description)
		}
		return nil
	},
}
