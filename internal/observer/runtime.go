// Package observer drives a simulation on its own goroutine with a
// fixed-timestep scheduler and publishes snapshots for concurrent readers.
package observer

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/core/system"
	"github.com/amphoreus/sim/internal/engine"
)

const (
	// MaxCatchUpSteps caps the ticks run by one scheduling iteration.
	MaxCatchUpSteps = 8

	// IdleSleep is how long the loop sleeps when no tick was due.
	IdleSleep = time.Millisecond

	MinTickHz     = 1
	MinMaxSamples = 16
)

// Simulation is the engine surface the runtime drives.
type Simulation interface {
	Tick() engine.Result
	State() engine.GlobalState
}

type Options struct {
	TickHz     int
	MaxSamples int
	Logger     *zap.Logger

	// Systems run on every fixed step around the simulation tick, ordered
	// by phase.
	Systems []system.System

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Runtime owns the simulation goroutine. The Simulation passed to Start must
// not be touched by anyone else until Stop returns.
type Runtime struct {
	sim     Simulation
	runner  *system.Runner
	shared  *SharedSnapshot
	samples *ring
	log     *zap.Logger
	now     func() time.Time
	sleep   func(time.Duration)

	fixedDt     time.Duration
	maxFrame    time.Duration
	last        time.Time
	accumulator time.Duration
	ticks       uint64
	tides       uint64

	shutdown atomic.Bool
	done     chan struct{}
}

// Start launches the simulation goroutine. Out-of-range options are clamped.
func Start(sim Simulation, opts Options) *Runtime {
	r := newRuntime(sim, opts)
	r.log.Info("observer runtime started",
		zap.Int("tick_hz", max(opts.TickHz, MinTickHz)),
		zap.Duration("fixed_dt", r.fixedDt),
		zap.Int("max_samples", len(r.samples.buf)))
	go r.loop()
	return r
}

func newRuntime(sim Simulation, opts Options) *Runtime {
	opts.TickHz = max(opts.TickHz, MinTickHz)
	opts.MaxSamples = max(opts.MaxSamples, MinMaxSamples)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	fixedDt := max(time.Second/time.Duration(opts.TickHz), 1)
	r := &Runtime{
		sim:      sim,
		shared:   &SharedSnapshot{},
		samples:  newRing(opts.MaxSamples),
		log:      opts.Logger,
		now:      opts.Now,
		sleep:    opts.Sleep,
		fixedDt:  fixedDt,
		maxFrame: fixedDt * MaxCatchUpSteps,
		done:     make(chan struct{}),
	}
	r.runner = system.NewRunner(&tickSystem{r: r}, &sampleSystem{r: r})
	for _, s := range opts.Systems {
		r.runner.Register(s)
	}
	r.shared.publish(Snapshot{State: sim.State()})
	return r
}

// Shared returns the snapshot cell readers poll.
func (r *Runtime) Shared() *SharedSnapshot { return r.shared }

// FixedDt is the simulated time per tick.
func (r *Runtime) FixedDt() time.Duration { return r.fixedDt }

// Stop asks the loop to exit and waits for it. An in-flight iteration runs
// to completion first. Safe to call more than once.
func (r *Runtime) Stop() {
	r.shutdown.Store(true)
	<-r.done
}

func (r *Runtime) loop() {
	defer close(r.done)
	defer func() {
		r.log.Info("observer runtime stopped",
			zap.Uint64("ticks", r.ticks),
			zap.Uint64("black_tides", r.tides))
	}()

	r.last = r.now()
	for !r.shutdown.Load() {
		if r.step() == 0 {
			r.sleep(IdleSleep)
		}
	}
}

// step runs one scheduling iteration and returns the number of ticks it ran.
func (r *Runtime) step() int {
	now := r.now()
	frame := min(max(now.Sub(r.last), 0), r.maxFrame)
	r.last = now
	r.accumulator += frame

	ran := 0
	for r.accumulator >= r.fixedDt && ran < MaxCatchUpSteps {
		r.runner.Tick(r.fixedDt)
		r.accumulator -= r.fixedDt
		ran++
	}
	if ran > 0 {
		r.shared.publish(Snapshot{
			State:          r.sim.State(),
			EntropySamples: r.samples.appendTo(make([]float64, 0, r.samples.len())),
			Ticks:          r.ticks,
			BlackTides:     r.tides,
		})
	}
	return ran
}

type tickSystem struct{ r *Runtime }

func (s *tickSystem) Phase() system.Phase { return system.PhaseSimulate }

func (s *tickSystem) Update(time.Duration) {
	if s.r.sim.Tick() == engine.BlackTideTriggered {
		s.r.tides++
	}
	s.r.ticks++
}

type sampleSystem struct{ r *Runtime }

func (s *sampleSystem) Phase() system.Phase { return system.PhaseSample }

func (s *sampleSystem) Update(time.Duration) {
	s.r.samples.push(s.r.sim.State().DestructionEntropy)
}
