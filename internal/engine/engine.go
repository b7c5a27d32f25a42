// Package engine runs the Amphoreus simulation: it seeds the world, evaluates
// destruction entropy each tick, carries Phainon's memory across black tides
// and propagates golden-blood corruption.
package engine

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/arena"
	"github.com/amphoreus/sim/internal/core/ecs"
	"github.com/amphoreus/sim/internal/core/event"
	"github.com/amphoreus/sim/internal/page"
	"github.com/amphoreus/sim/internal/world"
)

// ErrWorldNotReady is returned when the shared World has not been initialized.
var ErrWorldNotReady = errors.New("engine: world not initialized")

// DefaultArenaCapacity matches the observer demo: 256 MiB of world mass.
const DefaultArenaCapacity = 256 << 20

// Result is the outcome of a single tick.
type Result int

const (
	TickAdvanced Result = iota
	TimeBypassed
	BlackTideTriggered
)

func (r Result) String() string {
	switch r {
	case TickAdvanced:
		return "tick_advanced"
	case TimeBypassed:
		return "time_bypassed"
	case BlackTideTriggered:
		return "black_tide"
	default:
		return "unknown"
	}
}

// GlobalState is the externally observable summary of the world.
type GlobalState struct {
	CycleCount         uint64
	DestructionEntropy float64
	TimeConceptActive  bool
}

// DefaultGlobalState has time flowing and nothing destroyed yet.
func DefaultGlobalState() GlobalState {
	return GlobalState{TimeConceptActive: true}
}

// Seed sizes the three population tiers.
type Seed struct {
	Citizens     uint32 `yaml:"citizens" toml:"citizens"`
	Titans       uint32 `yaml:"titans" toml:"titans"`
	ChrysosHeirs uint32 `yaml:"chrysos_heirs" toml:"chrysos_heirs"`
}

func DefaultSeed() Seed {
	return Seed{Citizens: 12_000, Titans: 320, ChrysosHeirs: 64}
}

// Population is the number of live entities a seed produces, including the
// two flame-chase entities.
func (s Seed) Population() int {
	return int(s.Citizens) + int(s.Titans) + int(s.ChrysosHeirs) + 2
}

// FlameChase holds weak handles to the two tracked entities. A handle may
// outlive its entity; check liveness before use.
type FlameChase struct {
	Phainon ecs.Handle
	Cyrene  ecs.Handle
}

// Spawn lists the components to attach to a new entity. Nil fields are skipped.
type Spawn struct {
	Coreflame   *component.Coreflame
	MemoryLog   *component.MemoryLog
	GoldenBlood *component.GoldenBlood
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	ArenaCapacity int
	PagePath      string // debug page written on black tide; defaults to page.DefaultPath
	Workers       int    // corruption pass parallelism; defaults to GOMAXPROCS
	Logger        *zap.Logger
	Bus           *event.Bus
}

// Engine owns the arena, the global state, the flame-chase handles, the seed
// and Phainon's persistent memory. World data lives in the injected Shared
// handle. All methods must be called from a single goroutine.
type Engine struct {
	world    *world.Shared
	arena    *arena.Arena
	state    GlobalState
	flame    FlameChase
	seed     Seed
	memory   component.MemoryLog
	pagePath string
	workers  int
	log      *zap.Logger
	bus      *event.Bus

	lookup []float64 // corruption pass scratch, indexed by entity ID
}

func New(shared *world.Shared, opts Options) *Engine {
	if opts.ArenaCapacity <= 0 {
		opts.ArenaCapacity = DefaultArenaCapacity
	}
	if opts.PagePath == "" {
		opts.PagePath = page.DefaultPath
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		world:    shared,
		arena:    arena.New(opts.ArenaCapacity),
		state:    DefaultGlobalState(),
		seed:     DefaultSeed(),
		pagePath: opts.PagePath,
		workers:  opts.Workers,
		log:      opts.Logger,
		bus:      opts.Bus,
	}
}

func (e *Engine) State() GlobalState          { return e.state }
func (e *Engine) FlameChase() FlameChase      { return e.flame }
func (e *Engine) Seed() Seed                  { return e.seed }
func (e *Engine) Memory() component.MemoryLog { return e.memory }
func (e *Engine) World() *world.Shared        { return e.world }

// ArenaOffset is the number of arena bytes charged to the current generation.
func (e *Engine) ArenaOffset() int { return e.arena.Offset() }
