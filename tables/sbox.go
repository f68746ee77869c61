package tables

import (
	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/prng"
)

// SboxBank holds the eight nonlinear 6->4 bit substitution tables, each
// represented as a flat 64-entry lookup (4 rows of 16, row-major), per
// spec.md §4.4.
type SboxBank struct {
	boxes [8][64]byte
}

// NewStandardSboxBank returns the SboxBank carrying the published DES
// S-boxes.
func NewStandardSboxBank() *SboxBank {
	bank := &SboxBank{}
	for i, rows := range standardSboxRows {
		for row := 0; row < 4; row++ {
			for col := 0; col < 16; col++ {
				bank.boxes[i][row*16+col] = rows[row][col]
			}
		}
	}
	return bank
}

// NewRandomSboxBank synthesizes 8 fresh S-boxes from source, each row an
// independent uniform permutation of 0..15, matching spec.md §4.4's
// pedagogical-mode description.
func NewRandomSboxBank(source *prng.Source) *SboxBank {
	bank := &SboxBank{}
	for i := 0; i < 8; i++ {
		for row := 0; row < 4; row++ {
			perm := source.UniformPermutation(16)
			for col := 0; col < 16; col++ {
				bank.boxes[i][row*16+col] = byte(perm[col])
			}
		}
	}
	return bank
}

// Substitute applies all eight S-boxes to a 48-bit input, returning 32
// bits.  Each 6-bit chunk (b5 b4 b3 b2 b1 b0) selects row = 2*b5+b0,
// column = b4b3b2b1 (big-endian), per spec.md §4.4.
func (s *SboxBank) Substitute(input bitstring.Bitstring) (bitstring.Bitstring, error) {
	if input.Width() != 48 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "substitute: want 48 bits, got %d: %w", input.Width())
	}

	out := bitstring.New(32)
	for i := 0; i < 8; i++ {
		base := i * 6
		b5 := input.Bit(base + 0)
		b4 := input.Bit(base + 1)
		b3 := input.Bit(base + 2)
		b2 := input.Bit(base + 3)
		b1 := input.Bit(base + 4)
		b0 := input.Bit(base + 5)

		row := int(2*b5 + b0)
		col := int(b4)<<3 | int(b3)<<2 | int(b2)<<1 | int(b1)

		value := s.boxes[i][row*16+col]
		for bit := 0; bit < 4; bit++ {
			out.SetBit(i*4+bit, (value>>(3-bit))&1)
		}
	}
	return out, nil
}
