package component

// Path is the closed set of alignments a Coreflame may follow.
// The zero value is PathNone.
type Path uint8

const (
	PathNone Path = iota
	PathErudition
	PathDestruction
	PathRemembrance
)

func (p Path) String() string {
	switch p {
	case PathErudition:
		return "erudition"
	case PathDestruction:
		return "destruction"
	case PathRemembrance:
		return "remembrance"
	default:
		return "none"
	}
}

// Paths lists every alignment in declaration order.
var Paths = [...]Path{PathNone, PathErudition, PathDestruction, PathRemembrance}
