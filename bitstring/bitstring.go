// Package bitstring implements a fixed-width bit vector and the character
// string <-> bit string codec that DES-family algorithms are conventionally
// described over.
package bitstring

import (
	"github.com/nkazakov/rotorfeistel/errors"
)

const byteSize = 8

// Bitstring is an ordered, fixed-width sequence of bits.  Bit 0 is the most
// significant bit of byte 0 (big-endian, MSB-first indexing), matching the
// convention every permutation table in this module is defined against.
type Bitstring struct {
	data  []byte
	width int
}

// minBytes returns the minimum number of bytes needed to hold n bits.
func minBytes(n int) int {
	return (n + byteSize - 1) / byteSize
}

// New returns a zero-valued Bitstring of the given width.
func New(width int) Bitstring {
	return Bitstring{data: make([]byte, minBytes(width)), width: width}
}

// FromBytes wraps a byte slice as a Bitstring of width len(data)*8.  data is
// copied; the returned Bitstring does not alias the caller's slice.
func FromBytes(data []byte) Bitstring {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Bitstring{data: cp, width: len(data) * byteSize}
}

// Width returns the number of bits in b.
func (b Bitstring) Width() int {
	return b.width
}

// Bit returns the value (0 or 1) of the bit at index i.  i must be in
// [0, b.Width()).
func (b Bitstring) Bit(i int) byte {
	byteIdx := i / byteSize
	bitIdx := 7 - (i % byteSize)
	return (b.data[byteIdx] >> bitIdx) & 1
}

// SetBit sets the bit at index i to value (0 or 1).
func (b Bitstring) SetBit(i int, value byte) {
	byteIdx := i / byteSize
	bitIdx := 7 - (i % byteSize)
	if value&1 == 1 {
		b.data[byteIdx] |= 1 << bitIdx
	} else {
		b.data[byteIdx] &^= 1 << bitIdx
	}
}

// Bytes returns the packed byte representation of b.  b.Width() must be a
// multiple of 8, or Bytes returns ErrInvalidSize.
func (b Bitstring) Bytes() ([]byte, error) {
	if b.width%byteSize != 0 {
		return nil, errors.Annotate(errors.ErrInvalidSize, "bitstring bytes: width %d not byte-aligned: %w", b.width)
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

// Slice returns the sub-bitstring [lo, hi).
func (b Bitstring) Slice(lo, hi int) Bitstring {
	out := New(hi - lo)
	for i := lo; i < hi; i++ {
		out.SetBit(i-lo, b.Bit(i))
	}
	return out
}

// Concat returns b followed by other.
func (b Bitstring) Concat(other Bitstring) Bitstring {
	out := New(b.width + other.width)
	for i := 0; i < b.width; i++ {
		out.SetBit(i, b.Bit(i))
	}
	for i := 0; i < other.width; i++ {
		out.SetBit(b.width+i, other.Bit(i))
	}
	return out
}

// Xor returns the bitwise XOR of b and other, which must have equal width.
func (b Bitstring) Xor(other Bitstring) (Bitstring, error) {
	if b.width != other.width {
		return Bitstring{}, errors.Annotate(errors.ErrInvalidSize,
			"xor: width mismatch %d != %d: %w", b.width, other.width)
	}

	out := New(b.width)
	for i := range out.data {
		out.data[i] = b.data[i] ^ other.data[i]
	}
	return out, nil
}

// Equal reports whether b and other have the same width and bit contents.
func (b Bitstring) Equal(other Bitstring) bool {
	if b.width != other.width {
		return false
	}
	for i := 0; i < b.width; i++ {
		if b.Bit(i) != other.Bit(i) {
			return false
		}
	}
	return true
}

// String renders b as a string of '0'/'1' characters, mainly for test
// failure messages.
func (b Bitstring) String() string {
	out := make([]byte, b.width)
	for i := 0; i < b.width; i++ {
		out[i] = '0' + b.Bit(i)
	}
	return string(out)
}
