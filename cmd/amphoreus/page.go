package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amphoreus/sim/internal/page"
)

var pageCmd = &cobra.Command{
	Use:   "page [file]",
	Short: "Inspect an eternal page dump",
	Long: `Decode the arena dump written at the last black tide and print its
recorded offset and payload length.

Examples:
  amphoreus page
  amphoreus page /var/lib/amphoreus/amphoreus_autosave.page`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := page.DefaultPath
		if len(args) == 1 {
			path = args[0]
		} else if cfg, err := loadConfig(); err == nil && cfg.Simulation.PagePath != "" {
			path = cfg.Simulation.PagePath
		}

		snap, err := page.ReadFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "page:    %s\n", path)
		fmt.Fprintf(out, "offset:  %d\n", snap.Offset)
		fmt.Fprintf(out, "payload: %d bytes\n", len(snap.Memory))
		if snap.Offset != uint64(len(snap.Memory)) {
			fmt.Fprintln(out, "warning: offset and payload length disagree")
		}
		return nil
	},
}
