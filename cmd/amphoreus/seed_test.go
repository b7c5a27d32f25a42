package main

import (
	"testing"

	"github.com/amphoreus/sim/internal/config"
	"github.com/amphoreus/sim/internal/data"
	"github.com/amphoreus/sim/internal/engine"
)

func TestResolveSeed(t *testing.T) {
	table, err := data.LoadPresetTable("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     config.SeedConfig
		flag    string
		want    engine.Seed
		wantErr bool
	}{
		{name: "fallback default", want: engine.DefaultSeed()},
		{name: "config preset", cfg: config.SeedConfig{Preset: "observer"}, want: engine.Seed{Citizens: 20_000, Titans: 500, ChrysosHeirs: 128}},
		{name: "flag wins", cfg: config.SeedConfig{Preset: "observer"}, flag: "empty", want: engine.Seed{}},
		{name: "count override", cfg: config.SeedConfig{Preset: "empty", Titans: 4}, want: engine.Seed{Titans: 4}},
		{name: "unknown", flag: "atlantis", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSeed(table, tt.cfg, tt.flag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("seed = %+v, want %+v", got, tt.want)
			}
		})
	}
}
