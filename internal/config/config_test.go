package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amphoreus.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_hz = 120
status_interval = "5s"

[seed]
preset = "empty"
titans = 9

[ledger]
driver = "postgres"
dsn = "postgres://amphoreus@localhost/amphoreus"
conn_max_lifetime = "1h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Simulation.TickHz != 120 || cfg.Simulation.StatusInterval != 5*time.Second {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Simulation.MaxSamples != 360 || cfg.Simulation.EntityCapacity != 1_500_000 {
		t.Errorf("unset simulation fields lost defaults: %+v", cfg.Simulation)
	}
	if cfg.Seed.Preset != "empty" || cfg.Seed.Titans != 9 || cfg.Seed.Citizens != 0 {
		t.Errorf("seed = %+v", cfg.Seed)
	}
	if cfg.Ledger.Driver != "postgres" || cfg.Ledger.ConnMaxLifetime != time.Hour || cfg.Ledger.MaxOpenConns != 4 {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
	if _, err := Load(writeConfig(t, "[simulation\ntick_hz = 1")); err == nil {
		t.Fatal("malformed toml should fail")
	}
	if _, err := Load(writeConfig(t, "[simulation]\ntick_hz = \"fast\"")); err == nil {
		t.Fatal("mistyped field should fail")
	}
}
