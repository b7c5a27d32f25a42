package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/config"
	"github.com/amphoreus/sim/internal/core/event"
	coresys "github.com/amphoreus/sim/internal/core/system"
	"github.com/amphoreus/sim/internal/data"
	"github.com/amphoreus/sim/internal/engine"
	"github.com/amphoreus/sim/internal/observer"
	"github.com/amphoreus/sim/internal/persist"
	"github.com/amphoreus/sim/internal/scripting"
	"github.com/amphoreus/sim/internal/system"
	"github.com/amphoreus/sim/internal/world"
)

var (
	flagPreset   string
	flagDuration time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Seed the world and run the simulation",
	Long: `Seed the world from a preset and drive it on a fixed timestep,
logging a status line every status_interval until interrupted.

Examples:
  amphoreus run
  amphoreus run --preset empty --duration 10s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Seed preset name (overrides [seed].preset)")
	runCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long (0 = until SIGINT/SIGTERM)")
}

func run() (err error) {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Resolve the seed
	printSection("Seed")
	presets, err := data.LoadPresetTable(cfg.Seed.PresetsFile)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	seed, err := resolveSeed(presets, cfg.Seed, flagPreset)
	if err != nil {
		return err
	}

	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	log.Info("lua hooks",
		zap.Bool(scripting.HookSeedOverride, lua.HasHook(scripting.HookSeedOverride)),
		zap.Bool(scripting.HookOnBlackTide, lua.HasHook(scripting.HookOnBlackTide)))
	if s, ok := lua.SeedOverride(0, seed); ok {
		log.Info("seed overridden by script", zap.Any("from", seed), zap.Any("to", s))
		seed = s
	}
	printStat("citizens", seed.Citizens)
	printStat("titans", seed.Titans)
	printStat("chrysos heirs", seed.ChrysosHeirs)
	fmt.Println()

	// 4. Tide ledger
	bus := event.NewBus()
	dispatch := system.NewDispatchSystem(bus)
	systems := []coresys.System{dispatch}
	if lua.HasHook(scripting.HookOnBlackTide) {
		event.Subscribe(bus, lua.OnBlackTide)
	}

	var ledgerSys *system.LedgerSystem
	if cfg.Ledger.Driver != "" {
		printSection("Ledger")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		var ledger persist.TideLedger
		ledger, err = persist.Open(ctx, cfg.Ledger, log.Named("ledger"))
		cancel()
		if err != nil {
			return fmt.Errorf("tide ledger: %w", err)
		}
		defer func() { err = multierr.Append(err, ledger.Close()) }()
		ledgerSys = system.NewLedgerSystem(bus, ledger, log.Named("ledger"))
		systems = append(systems, ledgerSys)
		printOK(fmt.Sprintf("%s ledger ready", cfg.Ledger.Driver))
		fmt.Println()
	}

	// 5. Build and seed the world
	printSection("World")
	shared := world.NewShared()
	shared.Init(cfg.Simulation.EntityCapacity)
	eng := engine.New(shared, engine.Options{
		ArenaCapacity: cfg.Simulation.ArenaCapacity,
		PagePath:      cfg.Simulation.PagePath,
		Workers:       cfg.Simulation.Workers,
		Logger:        log.Named("engine"),
		Bus:           bus,
	})
	eng.SeedWorld(seed)

	census, _ := world.ReadValue(shared, func(w *world.World) world.Census { return w.TakeCensus() })
	for _, p := range component.Paths {
		if c, ok := census[p]; ok {
			printStat(p.String(), c.Count)
		}
	}
	printStat("arena bytes", eng.ArenaOffset())
	if !eng.State().TimeConceptActive {
		printOK("Cyrene holds time still")
	}
	fmt.Println()

	// 6. Start the observer runtime
	rt := observer.Start(eng, observer.Options{
		TickHz:     cfg.Simulation.TickHz,
		MaxSamples: cfg.Simulation.MaxSamples,
		Logger:     log.Named("observer"),
		Systems:    systems,
	})

	printSection("Running")
	printReady(fmt.Sprintf("tick %s, status every %s", rt.FixedDt(), cfg.Simulation.StatusInterval))
	fmt.Println()

	waitForShutdown(log, rt, shared, cfg.Simulation)

	// 7. Stop and drain the final tick's events
	rt.Stop()
	log.Debug("draining events", zap.Int("pending", bus.Pending()))
	dispatch.Flush()
	final := rt.Shared().Read()
	fields := []zap.Field{
		zap.Uint64("ticks", final.Ticks),
		zap.Uint64("black_tides", final.BlackTides),
		zap.Uint64("cycle", final.State.CycleCount),
	}
	if ledgerSys != nil {
		ledgerSys.Flush()
		fields = append(fields, zap.Int("tides_recorded", ledgerSys.Written()))
	}
	log.Info("simulation stopped", fields...)
	return nil
}

// waitForShutdown logs a status line every interval until a signal arrives
// or the --duration deadline passes.
func waitForShutdown(log *zap.Logger, rt *observer.Runtime, shared *world.Shared, cfg config.SimulationConfig) {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	var deadline <-chan time.Time
	if flagDuration > 0 {
		timer := time.NewTimer(flagDuration)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(max(cfg.StatusInterval, 100*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logStatus(log, rt.Shared().Read(), shared)
		case <-deadline:
			log.Info("duration elapsed", zap.Duration("duration", flagDuration))
			return
		case sig := <-shutdownCh:
			log.Info("received shutdown signal", zap.String("signal", sig.String()))
			return
		}
	}
}

func logStatus(log *zap.Logger, snap observer.Snapshot, shared *world.Shared) {
	fields := []zap.Field{
		zap.Uint64("cycle", snap.State.CycleCount),
		zap.Float64("entropy", snap.State.DestructionEntropy),
		zap.Bool("time_flows", snap.State.TimeConceptActive),
		zap.Uint64("ticks", snap.Ticks),
		zap.Uint64("black_tides", snap.BlackTides),
	}
	if len(snap.EntropySamples) > 0 {
		fields = append(fields, zap.Float64("entropy_peak", slices.Max(snap.EntropySamples)))
	}
	if census, ok := world.ReadValue(shared, func(w *world.World) world.Census { return w.TakeCensus() }); ok {
		for _, p := range component.Paths {
			if c, ok := census[p]; ok {
				fields = append(fields, zap.Int(p.String(), c.Count))
			}
		}
	}
	log.Info("status", fields...)
}
