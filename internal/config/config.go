package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that selects the config file.
const EnvPath = "AMPHOREUS_CONFIG"

// DefaultPath is read when neither --config nor EnvPath is given.
const DefaultPath = "config/amphoreus.toml"

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Seed       SeedConfig       `toml:"seed"`
	Ledger     LedgerConfig     `toml:"ledger"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickHz         int           `toml:"tick_hz"`
	MaxSamples     int           `toml:"max_samples"`
	ArenaCapacity  int           `toml:"arena_capacity"`  // bytes
	EntityCapacity int           `toml:"entity_capacity"` // initial ID space hint
	Workers        int           `toml:"workers"`         // 0 = GOMAXPROCS
	PagePath       string        `toml:"page_path"`
	StatusInterval time.Duration `toml:"status_interval"`
}

// SeedConfig picks a named preset; non-zero counts override the preset's.
type SeedConfig struct {
	Preset       string `toml:"preset"`
	PresetsFile  string `toml:"presets_file"`
	Citizens     uint32 `toml:"citizens"`
	Titans       uint32 `toml:"titans"`
	ChrysosHeirs uint32 `toml:"chrysos_heirs"`
}

type LedgerConfig struct {
	Driver          string        `toml:"driver"` // "sqlite", "postgres" or "" to disable
	DSN             string        `toml:"dsn"`    // file path for sqlite
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults mirror the observer demo.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickHz:         60,
			MaxSamples:     360,
			ArenaCapacity:  256 << 20,
			EntityCapacity: 1_500_000,
			PagePath:       "amphoreus_autosave.page",
			StatusInterval: time.Second,
		},
		Seed: SeedConfig{
			Preset: "observer",
		},
		Ledger: LedgerConfig{
			Driver:          "sqlite",
			DSN:             "data/tides.db",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
