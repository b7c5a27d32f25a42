// Package page encodes the arena debug snapshot ("eternal page") written when
// a black tide hits. The record is {offset u64, memory bytes} where memory is
// the arena's used prefix, so len(memory) == offset.
package page

import (
	"fmt"
	"os"
)

// DefaultPath is where the engine writes its page unless configured otherwise.
const DefaultPath = "amphoreus_autosave.page"

// Snapshot is the logical page record.
type Snapshot struct {
	Offset uint64
	Memory []byte
}

// Encode serializes s as offset followed by length-prefixed memory.
func Encode(s Snapshot) []byte {
	w := NewWriter(len(s.Memory) + 18)
	w.WriteU64(s.Offset)
	w.WriteBytes(s.Memory)
	return w.Bytes()
}

// Decode parses a record produced by Encode. Memory is copied out of data.
func Decode(data []byte) (Snapshot, error) {
	r := NewReader(data)
	off, err := r.ReadU64()
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode offset: %w", err)
	}
	mem, err := r.ReadBytes()
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode memory: %w", err)
	}
	if r.Remaining() != 0 {
		return Snapshot{}, fmt.Errorf("page: %d trailing bytes", r.Remaining())
	}
	return Snapshot{Offset: off, Memory: append([]byte(nil), mem...)}, nil
}

// WriteFile encodes s and replaces the file at path.
func WriteFile(path string, s Snapshot) error {
	if err := os.WriteFile(path, Encode(s), 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", path, err)
	}
	return nil
}

// ReadFile loads and decodes a page for offline inspection.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read page %s: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse page %s: %w", path, err)
	}
	return s, nil
}
