package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amphoreus/sim/internal/engine"
)

// Preset is a named world seed.
type Preset struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Seed        engine.Seed `yaml:",inline"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// PresetTable looks up seed presets by name. File entries replace built-ins
// of the same name.
type PresetTable struct {
	presets map[string]*Preset
	order   []string
}

// BuiltinPresets are always available, even without a presets file.
func BuiltinPresets() []Preset {
	return []Preset{
		{Name: "default", Description: "engine default population", Seed: engine.DefaultSeed()},
		{Name: "observer", Description: "observer demo population", Seed: engine.Seed{Citizens: 20_000, Titans: 500, ChrysosHeirs: 128}},
		{Name: "empty", Description: "flame-chase pair only", Seed: engine.Seed{}},
	}
}

// NewPresetTable indexes presets in order. Later entries win on name clashes.
func NewPresetTable(presets ...Preset) (*PresetTable, error) {
	t := &PresetTable{presets: make(map[string]*Preset, len(presets))}
	for i := range presets {
		p := presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i)
		}
		if _, ok := t.presets[p.Name]; !ok {
			t.order = append(t.order, p.Name)
		}
		t.presets[p.Name] = &p
	}
	return t, nil
}

// LoadPresetTable loads a presets YAML file on top of the built-ins. An empty
// path yields the built-ins alone.
func LoadPresetTable(path string) (*PresetTable, error) {
	presets := BuiltinPresets()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed presets: %w", err)
		}
		var f presetFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse seed presets: %w", err)
		}
		presets = append(presets, f.Presets...)
	}
	t, err := NewPresetTable(presets...)
	if err != nil {
		return nil, fmt.Errorf("seed presets %s: %w", path, err)
	}
	return t, nil
}

// Get returns the preset with the given name, or nil if none.
func (t *PresetTable) Get(name string) *Preset {
	return t.presets[name]
}

// All returns presets in first-seen order.
func (t *PresetTable) All() []Preset {
	out := make([]Preset, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.presets[name])
	}
	return out
}

func (t *PresetTable) Count() int {
	return len(t.presets)
}
