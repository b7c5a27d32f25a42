package page

import "encoding/binary"

// Varint tag bytes. Values below tagU16 are stored inline in one byte.
const (
	tagU16 = 251
	tagU32 = 252
	tagU64 = 253
)

// Writer builds a page record. Integers use the compact varint layout:
// one byte below 251, otherwise a tag byte followed by a little-endian
// u16, u32 or u64.
type Writer struct {
	buf []byte
}

func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// WriteU64 writes v as a varint.
func (w *Writer) WriteU64(v uint64) {
	switch {
	case v < tagU16:
		w.buf = append(w.buf, byte(v))
	case v <= 0xFFFF:
		w.buf = append(w.buf, tagU16)
		w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
	case v <= 0xFFFFFFFF:
		w.buf = append(w.buf, tagU32)
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
	default:
		w.buf = append(w.buf, tagU64)
		w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	}
}

// WriteBytes writes a varint length prefix followed by b.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU64(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }
