package main

import (
	"fmt"

	"github.com/amphoreus/sim/internal/config"
	"github.com/amphoreus/sim/internal/data"
	"github.com/amphoreus/sim/internal/engine"
)

// resolveSeed picks the preset named by the flag, falling back to the
// config, then "default". Non-zero counts in cfg override the preset.
func resolveSeed(table *data.PresetTable, cfg config.SeedConfig, flagPreset string) (engine.Seed, error) {
	name := flagPreset
	if name == "" {
		name = cfg.Preset
	}
	if name == "" {
		name = "default"
	}
	p := table.Get(name)
	if p == nil {
		return engine.Seed{}, fmt.Errorf("unknown seed preset %q", name)
	}

	seed := p.Seed
	if cfg.Citizens != 0 {
		seed.Citizens = cfg.Citizens
	}
	if cfg.Titans != 0 {
		seed.Titans = cfg.Titans
	}
	if cfg.ChrysosHeirs != 0 {
		seed.ChrysosHeirs = cfg.ChrysosHeirs
	}
	return seed, nil
}
