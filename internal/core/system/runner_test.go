package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner(
		recorder{"persist", PhasePersist, &log},
		recorder{"sim", PhaseSimulate, &log},
		recorder{"sample-a", PhaseSample, &log},
		recorder{"dispatch", PhaseDispatch, &log},
		recorder{"sample-b", PhaseSample, &log},
	)
	r.Register(nil)
	if r.Len() != 5 {
		t.Fatalf("Len() = %d", r.Len())
	}

	r.Tick(time.Millisecond)
	want := []string{"dispatch", "sim", "sample-a", "sample-b", "persist"}
	if len(log) != len(want) {
		t.Fatalf("ran %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order %v, want %v", log, want)
		}
	}
}
