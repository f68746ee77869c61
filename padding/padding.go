// Package padding implements the numeric, length-prefixed block padding
// scheme spec.md §4.7 describes: missing bytes are each set to the count of
// padding bytes added, and a full extra block is appended when the input is
// already block-aligned.
package padding

import (
	v "github.com/asaskevich/govalidator"

	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
)

// Config configures a Padder.
type Config struct {
	// BlockSize is the block width in bits.  Must be a positive multiple
	// of 8.
	BlockSize int `valid:"required"`
}

// Padder frames a bit string into fixed-size blocks and removes that
// framing again.
type Padder struct {
	blockSize int // bits
}

// New returns a Padder for the given config.  The default block size used
// elsewhere in this module is 64 bits.
func New(cfg Config) (*Padder, error) {
	ok, err := v.ValidateStruct(cfg)
	if err != nil || !ok {
		return nil, errors.ErrInvalidConfig
	}
	if cfg.BlockSize <= 0 || cfg.BlockSize%8 != 0 {
		return nil, errors.Annotate(errors.ErrInvalidSize, "padder: block size %d must be a positive multiple of 8: %w", cfg.BlockSize)
	}
	return &Padder{blockSize: cfg.BlockSize}, nil
}

// PadAndSplit pads s per spec.md §4.7 and splits the result into
// Padder.blockSize-bit blocks.
//
// Let r = len(s) mod B.  The number of padding bits added is B-r if r != 0,
// else B.  Padding bytes all carry the value N = padding_bits/8, in
// 1..B/8.
func (p *Padder) PadAndSplit(s bitstring.Bitstring) ([]bitstring.Bitstring, error) {
	r := s.Width() % p.blockSize
	padBits := p.blockSize - r
	if r == 0 {
		padBits = p.blockSize
	}
	padBytes := padBits / 8

	padding := bitstring.New(padBits)
	for i := 0; i < padBytes; i++ {
		for bit := 0; bit < 8; bit++ {
			padding.SetBit(i*8+bit, byte(padBytes>>(7-bit))&1)
		}
	}

	padded := s.Concat(padding)

	blockCount := padded.Width() / p.blockSize
	blocks := make([]bitstring.Bitstring, blockCount)
	for i := 0; i < blockCount; i++ {
		blocks[i] = padded.Slice(i*p.blockSize, (i+1)*p.blockSize)
	}
	return blocks, nil
}

// Strip removes the padding frame PadAndSplit's concatenated output
// carries.  Per spec.md §4.7's documented default, Strip is tolerant: if
// the last byte's value N is out of 1..BlockSize/8, or the trailing 8*N
// bits do not match N repeated bytes of value N, bits is returned
// unchanged rather than erroring.
func (p *Padder) Strip(bits bitstring.Bitstring) bitstring.Bitstring {
	if bits.Width() < 8 {
		return bits
	}

	last := bits.Slice(bits.Width()-8, bits.Width())
	n := 0
	for bit := 0; bit < 8; bit++ {
		n = (n << 1) | int(last.Bit(bit))
	}

	maxN := p.blockSize / 8
	if n < 1 || n > maxN {
		return bits
	}

	tailWidth := n * 8
	if tailWidth > bits.Width() {
		return bits
	}
	tail := bits.Slice(bits.Width()-tailWidth, bits.Width())
	for i := 0; i < n; i++ {
		for bit := 0; bit < 8; bit++ {
			if tail.Bit(i*8+bit) != byte((n>>(7-bit))&1) {
				return bits
			}
		}
	}

	return bits.Slice(0, bits.Width()-tailWidth)
}
