// amphoreus runs the Amphoreus world simulation.
//
// Usage:
//
//	amphoreus run               - Seed the world and run the observer loop
//	amphoreus presets           - List seed presets
//	amphoreus tides             - Show recent black tides from the ledger
//	amphoreus page <file>       - Inspect an eternal page dump
//
// Global flags:
//
//	--config <path>  - TOML config (default: $AMPHOREUS_CONFIG or config/amphoreus.toml)
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amphoreus/sim/internal/config"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "amphoreus",
	Short: "Amphoreus - deterministic world simulation",
	Long: `Amphoreus seeds a world of citizens, titans and Chrysos heirs and
advances it on a fixed timestep until destruction entropy saturates and a
black tide wipes it clean.

Examples:
  amphoreus run --preset observer
  amphoreus run --duration 30s
  amphoreus tides --limit 5
  amphoreus page amphoreus_autosave.page`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to TOML config (default $"+config.EnvPath+" or "+config.DefaultPath+")")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(tidesCmd)
	rootCmd.AddCommand(pageCmd)
}

// loadConfig resolves the config path from the flag, then the environment,
// then the default. Only a missing default file falls back to built-in
// defaults; an explicitly named file must exist.
func loadConfig() (*config.Config, error) {
	path, explicit := flagConfig, true
	if path == "" {
		path = os.Getenv(config.EnvPath)
	}
	if path == "" {
		path, explicit = config.DefaultPath, false
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Defaults(), nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
