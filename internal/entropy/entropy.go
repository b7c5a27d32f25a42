// Package entropy reduces tagged contribution nodes into the world's
// destruction entropy.
package entropy

import "github.com/amphoreus/sim/internal/component"

const (
	populationScale  = 1_000_000.0 // entity count at which the population term saturates
	populationWeight = 0.35
	conflictWeight   = 0.5
	maxMultiplier    = 4.0
)

// Node is one contribution to the entropy reduction. The set of node types is
// closed: EntityCount, ConflictEvent and Multiplier.
type Node interface {
	node()
}

// EntityCount contributes in proportion to population, saturating at one million.
type EntityCount struct{ N uint32 }

// ConflictEvent contributes half its severity, clamped to [0,1].
type ConflictEvent struct{ Severity float64 }

// Multiplier scales the summed contributions, clamped to [0,4].
type Multiplier struct{ Scale float64 }

func (EntityCount) node()   {}
func (ConflictEvent) node() {}
func (Multiplier) node()    {}

// Evaluate sums the additive terms, applies the product of all multipliers
// and clamps the result to [0,1]. Nodes are reduced in the order given.
// A nil node is ignored.
func Evaluate(nodes []Node) float64 {
	base := 0.0
	mult := 1.0
	for _, n := range nodes {
		switch n := n.(type) {
		case EntityCount:
			base += component.Clamp01(float64(n.N)/populationScale) * populationWeight
		case ConflictEvent:
			base += component.Clamp01(n.Severity) * conflictWeight
		case Multiplier:
			mult *= component.Clamp(n.Scale, 0, maxMultiplier)
		}
	}
	return component.Clamp01(base * mult)
}
