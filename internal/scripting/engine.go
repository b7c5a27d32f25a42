package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/core/event"
	"github.com/amphoreus/sim/internal/engine"
)

// Hook names looked up as Lua globals.
const (
	HookSeedOverride = "seed_override"
	HookOnBlackTide  = "on_black_tide"
)

// Engine wraps a single gopher-lua VM for simulation hooks.
// Single-goroutine access only: the simulation goroutine once the runtime
// has started.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir. A
// missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("log_info", vm.NewFunction(e.luaLog))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// luaLog exposes log_info(msg) to scripts.
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// HasHook reports whether a script defined the named global function.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SeedOverride calls seed_override(cycle, seed). A returned table replaces
// the fields it sets; nil, false or a missing hook keeps seed as is.
func (e *Engine) SeedOverride(cycle uint64, seed engine.Seed) (engine.Seed, bool) {
	fn, ok := e.vm.GetGlobal(HookSeedOverride).(*lua.LFunction)
	if !ok {
		return seed, false
	}

	t := e.vm.NewTable()
	t.RawSetString("citizens", lua.LNumber(seed.Citizens))
	t.RawSetString("titans", lua.LNumber(seed.Titans))
	t.RawSetString("chrysos_heirs", lua.LNumber(seed.ChrysosHeirs))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(cycle), t); err != nil {
		e.log.Error("lua seed_override error", zap.Error(err))
		return seed, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		if lua.LVAsBool(result) {
			e.log.Warn("lua seed_override returned non-table", zap.String("type", result.Type().String()))
		}
		return seed, false
	}

	out := seed
	out.Citizens = lCount(rt, "citizens", seed.Citizens)
	out.Titans = lCount(rt, "titans", seed.Titans)
	out.ChrysosHeirs = lCount(rt, "chrysos_heirs", seed.ChrysosHeirs)
	return out, true
}

// OnBlackTide calls on_black_tide(tide) if a script defines it. Errors are
// logged; the simulation carries on.
func (e *Engine) OnBlackTide(ev event.BlackTide) {
	fn, ok := e.vm.GetGlobal(HookOnBlackTide).(*lua.LFunction)
	if !ok {
		return
	}

	t := e.vm.NewTable()
	t.RawSetString("cycle", lua.LNumber(ev.Cycle))
	t.RawSetString("entropy", lua.LNumber(ev.Entropy))
	t.RawSetString("arena_offset", lua.LNumber(ev.ArenaOffset))
	t.RawSetString("population", lua.LNumber(ev.Population))
	t.RawSetString("retained_cycles", lua.LNumber(ev.RetainedCycles))
	t.RawSetString("trauma", lua.LNumber(ev.Trauma))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_black_tide error", zap.Error(err))
	}
}

// --- Lua helpers ---

// lCount reads a non-negative count field, keeping def when the field is
// absent or not a number.
func lCount(t *lua.LTable, key string, def uint32) uint32 {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return def
	}
	v := float64(n)
	switch {
	case !(v > 0):
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
