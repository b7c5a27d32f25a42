// Package arena implements the fixed-capacity bump allocator that bounds
// total world mass. Allocation is O(1) and the only reclamation is Reset.
package arena

import "errors"

var (
	// ErrInvalidAlignment is returned when the requested alignment is not a power of two.
	ErrInvalidAlignment = errors.New("arena: alignment is not a power of two")
	// ErrExhausted is returned when an allocation does not fit in the remaining capacity.
	ErrExhausted = errors.New("arena: capacity exhausted")
)

// Arena is a contiguous zero-initialized byte buffer with a bump offset.
// Not safe for concurrent use; the engine owns it on the simulation goroutine.
type Arena struct {
	memory []byte
	offset int
}

func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{memory: make([]byte, capacity)}
}

// Alloc reserves n bytes starting at the next multiple of align.
// On failure the offset is left untouched.
func (a *Arena) Alloc(n, align int) ([]byte, error) {
	if align <= 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return nil, ErrInvalidAlignment
	}
	if n < 0 {
		return nil, ErrExhausted
	}

	start := (a.offset + align - 1) &^ (align - 1)
	if start < a.offset {
		return nil, ErrExhausted // overflow while rounding
	}
	end := start + n
	if end < start || end > len(a.memory) {
		return nil, ErrExhausted
	}

	a.offset = end
	return a.memory[start:end:end], nil
}

// Reset moves the offset back to zero. Previously returned slices become
// logically invalid and will be overlapped by future allocations.
func (a *Arena) Reset() {
	a.offset = 0
}

// Used returns the live accounting prefix [0, offset).
func (a *Arena) Used() []byte {
	return a.memory[:a.offset]
}

func (a *Arena) Offset() int { return a.offset }
func (a *Arena) Cap() int    { return len(a.memory) }
