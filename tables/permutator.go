// Package tables implements the six permutation/expansion tables and the
// eight S-boxes a DES-family Feistel cipher is built from, in both standard
// (published DES constants) and randomized (per-instance, pedagogical)
// modes.  Grounded on original_source/src/des_permutation.py.
package tables

import (
	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/nkazakov/rotorfeistel/prng"
)

// Permutator holds the six tables a round of the cipher applies.
type Permutator struct {
	ip         []int
	ipInverse  []int
	expansion  []int
	pBox       []int
	pc1        []int
	pc1Parity  []int
	pc2        []int
}

// NewStandardPermutator returns the Permutator carrying the published DES
// tables.
func NewStandardPermutator() *Permutator {
	return &Permutator{
		ip:        cloneInts(standardIP),
		ipInverse: cloneInts(standardIPInverse),
		expansion: cloneInts(standardExpansion),
		pBox:      cloneInts(standardPBox),
		pc1:       cloneInts(standardPC1),
		pc1Parity: cloneInts(standardPC1Parity),
		pc2:       cloneInts(standardPC2),
	}
}

// NewRandomPermutator synthesizes a fresh set of tables from source,
// following spec.md §4.3's "random mode synthesizes IP first and computes
// IP⁻¹ from it" rule.  PC-1's 56 kept positions and 8 parity positions are
// drawn as a single unique 64-way permutation split at 56; PC-2 is the
// first 48 entries of a unique 56-way permutation; P-box is a unique
// 32-way permutation; the expansion table is a 48-way
// with-replacement sequence over 32 source positions, matching
// des_permutation.py's random_permutation(32, 48).
func NewRandomPermutator(source *prng.Source) (*Permutator, error) {
	ip := source.UniformPermutation(64)
	ipInverse := prng.Inverse(ip)

	pc1Full := source.UniformPermutation(64)
	pc1 := append([]int{}, pc1Full[:56]...)
	pc1Parity := append([]int{}, pc1Full[56:]...)

	p := &Permutator{
		ip:        ip,
		ipInverse: ipInverse,
		expansion: source.UniformSequence(32, 48),
		pBox:      source.UniformPermutation(32),
		pc1:       pc1,
		pc1Parity: pc1Parity,
		pc2:       source.UniformPermutation(56)[:48],
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Permutator) validate() error {
	for name, table := range map[string][]int{
		"ip": p.ip, "ip_inverse": p.ipInverse, "expansion": p.expansion,
		"p_box": p.pBox, "pc1": p.pc1, "pc2": p.pc2,
	} {
		bound := len(p.ip)
		if name == "expansion" || name == "p_box" {
			bound = 32
		}
		if name == "pc1" {
			bound = 64
		}
		if name == "pc2" {
			bound = 56
		}
		for _, idx := range table {
			if idx < 0 || idx >= bound {
				return errors.Annotate(errors.ErrInvalidTable, "table %q references out-of-range index %d: %w", name, idx)
			}
		}
	}
	return nil
}

func cloneInts(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Apply permutes b according to table: output bit i = b.Bit(table[i]).
// Every entry of table must be a valid index into b; the output has width
// len(table).
func (p *Permutator) Apply(b bitstring.Bitstring, table []int) (bitstring.Bitstring, error) {
	out := bitstring.New(len(table))
	for i, pos := range table {
		if pos < 0 || pos >= b.Width() {
			return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidTable,
				"apply: position %d at output index %d out of range for width %d: %w", pos, i, b.Width())
		}
		out.SetBit(i, b.Bit(pos))
	}
	return out, nil
}

// InitialPermutation applies IP to a 64-bit block.
func (p *Permutator) InitialPermutation(block bitstring.Bitstring) (bitstring.Bitstring, error) {
	if block.Width() != 64 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "initial permutation: want 64 bits, got %d: %w", block.Width())
	}
	return p.Apply(block, p.ip)
}

// InverseInitialPermutation applies IP⁻¹ to a 64-bit block.
func (p *Permutator) InverseInitialPermutation(block bitstring.Bitstring) (bitstring.Bitstring, error) {
	if block.Width() != 64 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "inverse initial permutation: want 64 bits, got %d: %w", block.Width())
	}
	return p.Apply(block, p.ipInverse)
}

// Expand applies the expansion table E to a 32-bit half-block, producing 48
// bits.
func (p *Permutator) Expand(half bitstring.Bitstring) (bitstring.Bitstring, error) {
	if half.Width() != 32 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "expansion: want 32 bits, got %d: %w", half.Width())
	}
	return p.Apply(half, p.expansion)
}

// PBox applies the straight permutation after S-box substitution.
func (p *Permutator) PBox(half bitstring.Bitstring) (bitstring.Bitstring, error) {
	if half.Width() != 32 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "p-box: want 32 bits, got %d: %w", half.Width())
	}
	return p.Apply(half, p.pBox)
}

// PermutedChoice1 strips the 64-bit key down to the 56 bits the schedule
// rotates, returning the 56-bit key material and the 8 discarded parity
// bits as a secondary output.
func (p *Permutator) PermutedChoice1(key bitstring.Bitstring) (kept, parity bitstring.Bitstring, err error) {
	if key.Width() != 64 {
		return bitstring.Bitstring{}, bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "PC-1: want 64 bits, got %d: %w", key.Width())
	}
	kept, err = p.Apply(key, p.pc1)
	if err != nil {
		return bitstring.Bitstring{}, bitstring.Bitstring{}, err
	}
	parity, err = p.Apply(key, p.pc1Parity)
	if err != nil {
		return bitstring.Bitstring{}, bitstring.Bitstring{}, err
	}
	return kept, parity, nil
}

// PermutedChoice2 derives a 48-bit round subkey from the 56-bit rotated key
// material, using the direct 56->48 table (spec.md §4.5's "standard DES
// form" realization).
func (p *Permutator) PermutedChoice2(keyHalves bitstring.Bitstring) (bitstring.Bitstring, error) {
	if keyHalves.Width() != 56 {
		return bitstring.Bitstring{}, errors.Annotate(errors.ErrInvalidSize, "PC-2: want 56 bits, got %d: %w", keyHalves.Width())
	}
	return p.Apply(keyHalves, p.pc2)
}
