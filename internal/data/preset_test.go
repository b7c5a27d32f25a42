package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amphoreus/sim/internal/engine"
)

func TestBuiltinPresets(t *testing.T) {
	table, err := LoadPresetTable("")
	if err != nil {
		t.Fatalf("LoadPresetTable(\"\") failed: %v", err)
	}
	if table.Count() != 3 {
		t.Fatalf("Count() = %d", table.Count())
	}
	if p := table.Get("default"); p == nil || p.Seed != engine.DefaultSeed() {
		t.Fatalf("default preset = %+v", p)
	}
	if p := table.Get("observer"); p == nil || p.Seed.Population() != 20_000+500+128+2 {
		t.Fatalf("observer preset = %+v", p)
	}
	if table.Get("nope") != nil {
		t.Fatal("unknown preset found")
	}
}

func TestLoadPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed_presets.yaml")
	body := `presets:
  - name: hamlet
    description: a quiet village
    citizens: 40
    titans: 1
  - name: empty
    citizens: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadPresetTable(path)
	if err != nil {
		t.Fatalf("LoadPresetTable() failed: %v", err)
	}
	if table.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", table.Count())
	}

	hamlet := table.Get("hamlet")
	if hamlet == nil || hamlet.Seed != (engine.Seed{Citizens: 40, Titans: 1}) || hamlet.Description != "a quiet village" {
		t.Fatalf("hamlet = %+v", hamlet)
	}
	if empty := table.Get("empty"); empty.Seed.Citizens != 5 {
		t.Fatalf("file did not override built-in: %+v", empty)
	}

	names := []string{}
	for _, p := range table.All() {
		names = append(names, p.Name)
	}
	want := []string{"default", "observer", "empty", "hamlet"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("All() order = %v, want %v", names, want)
		}
	}
}

func TestLoadPresetFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPresetTable(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("presets: [citizens: {"), 0o644)
	if _, err := LoadPresetTable(bad); err == nil {
		t.Fatal("malformed yaml should fail")
	}

	unnamed := filepath.Join(dir, "unnamed.yaml")
	os.WriteFile(unnamed, []byte("presets:\n  - citizens: 3\n"), 0o644)
	if _, err := LoadPresetTable(unnamed); err == nil {
		t.Fatal("unnamed preset should fail")
	}
}
