package page

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when a record ends before a field is complete.
var ErrTruncated = errors.New("page: truncated record")

// Reader decodes fields written by Writer.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) need(n int) ([]byte, error) {
	if n < 0 || len(r.data)-r.off < n {
		return nil, ErrTruncated
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadU64 reads one varint.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.need(1)
	if err != nil {
		return 0, err
	}
	switch tag := b[0]; {
	case tag < tagU16:
		return uint64(tag), nil
	case tag == tagU16:
		b, err = r.need(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case tag == tagU32:
		b, err = r.need(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case tag == tagU64:
		b, err = r.need(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("page: unsupported varint tag %d", tag)
	}
}

// ReadBytes reads a length-prefixed byte sequence. The result aliases the
// reader's input.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)-r.off) {
		return nil, ErrTruncated
	}
	return r.need(int(n))
}

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }
