package component

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{math.Inf(1), 0, 4, 4},
		{math.Inf(-1), 0, 4, 0},
		{math.NaN(), 0, 1, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestPathZeroValueIsNone(t *testing.T) {
	var cf Coreflame
	if cf.Alignment != PathNone || cf.Alignment.String() != "none" {
		t.Fatalf("zero alignment = %v", cf.Alignment)
	}
	if PathRemembrance.String() != "remembrance" {
		t.Fatal("unexpected name")
	}
}
