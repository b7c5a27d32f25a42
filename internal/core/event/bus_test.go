package event

import "testing"

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []uint64
	Subscribe(b, func(ev BlackTide) { got = append(got, ev.Cycle) })

	Emit(b, BlackTide{Cycle: 1})
	Emit(b, BlackTide{Cycle: 2})
	if b.Pending() != 2 {
		t.Fatalf("Pending() = %d", b.Pending())
	}

	b.DispatchAll() // front buffer still empty
	if len(got) != 0 {
		t.Fatalf("events delivered before swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("delivered %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Fatalf("events redelivered: %v", got)
	}
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	tides, bypasses := 0, 0
	Subscribe(b, func(BlackTide) { tides++ })
	Subscribe(b, func(TimeBypassed) { bypasses++ })
	Subscribe(b, func(TimeBypassed) { bypasses++ })

	Emit(b, TimeBypassed{Cycle: 4})
	b.SwapBuffers()
	b.DispatchAll()
	if tides != 0 || bypasses != 2 {
		t.Fatalf("tides=%d bypasses=%d", tides, bypasses)
	}
}

func TestEmitNilBus(t *testing.T) {
	Emit[BlackTide](nil, BlackTide{})
}
