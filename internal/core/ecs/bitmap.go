package ecs

import "math/bits"

// Bitmap is a growable set of uint32 indices packed into 64-bit words.
type Bitmap struct {
	words []uint64
}

func NewBitmap(capacity int) Bitmap {
	if capacity < 0 {
		capacity = 0
	}
	return Bitmap{words: make([]uint64, (capacity+63)/64)}
}

func (b *Bitmap) Set(i uint32) {
	w := int(i / 64)
	if w >= len(b.words) {
		grown := make([]uint64, w+1, max(w+1, 2*len(b.words)))
		copy(grown, b.words)
		b.words = grown
	}
	b.words[w] |= 1 << (i % 64)
}

func (b *Bitmap) Unset(i uint32) {
	w := int(i / 64)
	if w < len(b.words) {
		b.words[w] &^= 1 << (i % 64)
	}
}

func (b *Bitmap) Test(i uint32) bool {
	w := int(i / 64)
	return w < len(b.words) && b.words[w]&(1<<(i%64)) != 0
}

// Clear unsets every bit but keeps the allocated span.
func (b *Bitmap) Clear() {
	clear(b.words)
}

// Count returns the number of set bits.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Len is the number of indices covered without growing.
func (b *Bitmap) Len() int { return len(b.words) * 64 }
